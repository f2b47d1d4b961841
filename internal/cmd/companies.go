package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/session"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Manage companies",
	Long:  `List, create, update, and deactivate companies. Super admin only.`,
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, sess, err := requireCompanyAdmin(cmd)
		if err != nil {
			return err
		}
		_ = sess

		companies, err := a.client.ListCompanies(cmd.Context())
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format != "" && format != "text" {
			return formatList(cmd, format, companies)
		}

		if len(companies) == 0 {
			fmt.Println("No companies found.")
			return nil
		}

		fmt.Printf("%-5s %-30s %-8s %s\n", "ID", "NAME", "ACTIVE", "EMAIL")
		for i := range companies {
			c := &companies[i]
			fmt.Printf("%-5d %-30s %-8t %s\n", c.ID, c.Name, c.IsActive, c.CompanyEmail)
		}
		return nil
	},
}

var companiesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := requireCompanyAdmin(cmd)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("company id must be a number")
		}

		company, err := a.client.GetCompany(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:     %d\n", company.ID)
		fmt.Printf("Name:   %s\n", company.Name)
		fmt.Printf("Login:  %s\n", company.CompanyUsername)
		fmt.Printf("Email:  %s\n", company.CompanyEmail)
		fmt.Printf("Active: %t\n", company.IsActive)
		if company.Description != "" {
			fmt.Printf("Description:\n  %s\n", company.Description)
		}
		return nil
	},
}

var companiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company",
	Long: `Create a company with its own login. The company account signs in
through the same login command as individuals and gets admin access
scoped to its tenant.

Examples:
  taskflow companies create --name "Acme Corp" --login acme --password changeme --email ops@acme.test`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := requireCompanyAdmin(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		login, _ := cmd.Flags().GetString("login")
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")
		description, _ := cmd.Flags().GetString("description")

		if name == "" || login == "" || password == "" || email == "" {
			return errors.NewValidationError("--name, --login, --password, and --email are required")
		}

		company, err := a.client.CreateCompany(cmd.Context(), api.CreateCompanyRequest{
			Name:            name,
			Description:     description,
			CompanyUsername: login,
			CompanyPassword: password,
			CompanyEmail:    email,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created company #%d (%s)\n", company.ID, company.Name)
		return nil
	},
}

var companiesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := requireCompanyAdmin(cmd)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("company id must be a number")
		}

		var req api.UpdateCompanyRequest
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}

		company, err := a.client.UpdateCompany(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated company #%d (%s)\n", company.ID, company.Name)
		return nil
	},
}

var companiesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompanyActive(cmd, args[0], false)
	},
}

var companiesActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Reactivate a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompanyActive(cmd, args[0], true)
	},
}

func setCompanyActive(cmd *cobra.Command, arg string, active bool) error {
	a, _, err := requireCompanyAdmin(cmd)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return errors.NewValidationError("company id must be a number")
	}

	if active {
		if _, err := a.client.ActivateCompany(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Activated company #%d.\n", id)
		return nil
	}
	if err := a.client.DeleteCompany(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deactivated company #%d.\n", id)
	return nil
}

func requireCompanyAdmin(cmd *cobra.Command) (*app, session.Session, error) {
	a := getApp()
	sess, err := a.requireRoute(cmd.Context(), "/companies")
	if err != nil {
		return nil, session.Session{}, err
	}
	if !a.guard.CanManageCompanies(sess.Subject()) {
		return nil, session.Session{}, errors.NewAccessDeniedError("manage companies")
	}
	return a, sess, nil
}

func init() {
	companiesListCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")

	companiesCreateCmd.Flags().String("name", "", "company name")
	companiesCreateCmd.Flags().String("login", "", "company login name")
	companiesCreateCmd.Flags().String("password", "", "company account password")
	companiesCreateCmd.Flags().String("email", "", "company contact email")
	companiesCreateCmd.Flags().String("description", "", "company description")

	companiesUpdateCmd.Flags().String("name", "", "new name")
	companiesUpdateCmd.Flags().String("description", "", "new description")

	companiesCmd.AddCommand(companiesListCmd)
	companiesCmd.AddCommand(companiesShowCmd)
	companiesCmd.AddCommand(companiesCreateCmd)
	companiesCmd.AddCommand(companiesUpdateCmd)
	companiesCmd.AddCommand(companiesDeactivateCmd)
	companiesCmd.AddCommand(companiesActivateCmd)
	rootCmd.AddCommand(companiesCmd)
}
