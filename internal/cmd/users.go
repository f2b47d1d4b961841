package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/errors"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long:  `List, create, update, and deactivate users. Admin only.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/users")
		if err != nil {
			return err
		}
		if !a.guard.CanManageUsers(sess.Subject()) {
			return errors.NewAccessDeniedError("manage users")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		users, err := a.client.ListUsers(cmd.Context(), api.ListUsersOptions{Limit: limit})
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format != "" && format != "text" {
			return formatList(cmd, format, users)
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("%-5s %-30s %-12s %-8s %s\n", "ID", "EMAIL", "ROLE", "ACTIVE", "COMPANY")
		for i := range users {
			u := &users[i]
			company := "-"
			if u.Company != nil {
				company = u.Company.Name
			}
			fmt.Printf("%-5d %-30s %-12s %-8t %s\n", u.ID, u.Email, u.Role, u.IsActive, company)
		}
		return nil
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/users")
		if err != nil {
			return err
		}
		if !a.guard.CanManageUsers(sess.Subject()) {
			return errors.NewAccessDeniedError("manage users")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("user id must be a number")
		}

		user, err := a.client.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:     %d\n", user.ID)
		fmt.Printf("Email:  %s\n", user.Email)
		if user.FullName != "" {
			fmt.Printf("Name:   %s\n", user.FullName)
		}
		fmt.Printf("Role:   %s\n", user.Role)
		fmt.Printf("Active: %t\n", user.IsActive)
		if user.Company != nil {
			fmt.Printf("Company: %s\n", user.Company.Name)
		}
		if user.CanAssignTasks {
			fmt.Println("May assign tasks to others")
		}
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long: `Create a user account. Company admins create users in their own
company; super admins may pick any company with --company.

Examples:
  taskflow users create --email bob@example.com --password changeme
  taskflow users create --email bob@example.com --password changeme --role admin --company 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/users")
		if err != nil {
			return err
		}
		if !a.guard.CanManageUsers(sess.Subject()) {
			return errors.NewAccessDeniedError("manage users")
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return errors.NewValidationError("--email and --password are required")
		}
		role, _ := cmd.Flags().GetString("role")
		companyID, _ := cmd.Flags().GetInt("company")
		canAssign, _ := cmd.Flags().GetBool("can-assign-tasks")

		req := api.CreateUserRequest{
			Email:          email,
			Username:       email,
			Password:       password,
			Role:           role,
			IsActive:       true,
			CanAssignTasks: canAssign,
		}
		if companyID > 0 {
			req.CompanyID = &companyID
		}

		user, err := a.client.CreateUser(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Created user #%d (%s)\n", user.ID, user.Email)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/users")
		if err != nil {
			return err
		}
		if !a.guard.CanManageUsers(sess.Subject()) {
			return errors.NewAccessDeniedError("manage users")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("user id must be a number")
		}

		var req api.UpdateUserRequest
		if cmd.Flags().Changed("email") {
			v, _ := cmd.Flags().GetString("email")
			req.Email = &v
		}
		if cmd.Flags().Changed("role") {
			v, _ := cmd.Flags().GetString("role")
			req.Role = &v
		}
		if cmd.Flags().Changed("can-assign-tasks") {
			v, _ := cmd.Flags().GetBool("can-assign-tasks")
			req.CanAssignTasks = &v
		}

		user, err := a.client.UpdateUser(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated user #%d (%s)\n", user.ID, user.Email)
		return nil
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setUserActive(cmd, args[0], false)
	},
}

var usersActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Reactivate a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setUserActive(cmd, args[0], true)
	},
}

func setUserActive(cmd *cobra.Command, arg string, active bool) error {
	a := getApp()
	sess, err := a.requireRoute(cmd.Context(), "/users")
	if err != nil {
		return err
	}
	if !a.guard.CanManageUsers(sess.Subject()) {
		return errors.NewAccessDeniedError("manage users")
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return errors.NewValidationError("user id must be a number")
	}

	if active {
		if _, err := a.client.ActivateUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Activated user #%d.\n", id)
		return nil
	}
	if err := a.client.DeleteUser(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deactivated user #%d.\n", id)
	return nil
}

func init() {
	usersListCmd.Flags().Int("limit", 0, "maximum number of users to return")
	usersListCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")

	usersCreateCmd.Flags().String("email", "", "user email")
	usersCreateCmd.Flags().String("password", "", "initial password")
	usersCreateCmd.Flags().String("role", "user", "role (user, admin)")
	usersCreateCmd.Flags().Int("company", 0, "company id (super admin only)")
	usersCreateCmd.Flags().Bool("can-assign-tasks", false, "allow this user to assign tasks")

	usersUpdateCmd.Flags().String("email", "", "new email")
	usersUpdateCmd.Flags().String("role", "", "new role")
	usersUpdateCmd.Flags().Bool("can-assign-tasks", false, "allow this user to assign tasks")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeactivateCmd)
	usersCmd.AddCommand(usersActivateCmd)
	rootCmd.AddCommand(usersCmd)
}
