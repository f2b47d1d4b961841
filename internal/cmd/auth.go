package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Log in, log out, and inspect the current session.`,
}

// authLoginCmd signs in with a personal account or a company account.
// One identity field serves both: taskflow tries the personal endpoint
// first and falls back to the company endpoint.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to TaskFlow",
	Long: `Log in with your email and password, or with a company account's
login name and password. You do not need to say which kind of account
it is — both are tried.

Examples:
  taskflow auth login
  taskflow auth login --identity alice@example.com --password secret
  taskflow auth login --identity acme-corp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, _ := cmd.Flags().GetString("identity")
		password, _ := cmd.Flags().GetString("password")

		if identity == "" || password == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Email or company name").
					Value(&identity),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			))
			if err := form.Run(); err != nil {
				return fmt.Errorf("login prompt failed: %w", err)
			}
		}

		a := getApp()
		if err := a.initSession(cmd.Context()); err != nil {
			return err
		}

		sess, err := a.store.Login(cmd.Context(), identity, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.User.Email, sess.Role)
		if sess.Demo {
			fmt.Println("Demo session: data shown is local only, backend calls are disabled.")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if err := a.initSession(cmd.Context()); err != nil {
			return err
		}
		a.store.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if err := a.initSession(cmd.Context()); err != nil {
			return err
		}

		sess := a.store.Current()
		if !sess.Authenticated {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'taskflow auth login' to authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("Email: %s\n", sess.User.Email)
		fmt.Printf("Role:  %s\n", sess.Role)
		if sess.User.Company != nil {
			fmt.Printf("Company: %s\n", sess.User.Company.Name)
		}
		if sess.Demo {
			fmt.Println("Mode:  demo (no backend session)")
		}
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile of the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireSession(cmd.Context())
		if err != nil {
			return err
		}

		user := sess.User
		if !sess.Demo {
			fresh, err := a.client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			user = *fresh
		}

		fmt.Printf("ID:    %d\n", user.ID)
		fmt.Printf("Email: %s\n", user.Email)
		if user.FullName != "" {
			fmt.Printf("Name:  %s\n", user.FullName)
		}
		fmt.Printf("Role:  %s\n", user.Role)
		if user.Company != nil {
			fmt.Printf("Company: %s\n", user.Company.Name)
		}
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("identity", "", "email or company login name")
	authLoginCmd.Flags().String("password", "", "account password")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}
