package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/profile")
		if err != nil {
			return err
		}

		user := sess.User
		if !sess.Demo {
			fresh, err := a.client.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			user = *fresh
		}

		fmt.Printf("Email:      %s\n", user.Email)
		if user.FullName != "" {
			fmt.Printf("Name:       %s\n", user.FullName)
		}
		if user.Department != "" {
			fmt.Printf("Department: %s\n", user.Department)
		}
		if user.PhoneNumber != "" {
			fmt.Printf("Phone:      %s\n", user.PhoneNumber)
		}
		if user.PreferredLanguage != "" {
			fmt.Printf("Language:   %s\n", user.PreferredLanguage)
		}
		if user.AboutMe != "" {
			fmt.Printf("About:\n  %s\n", user.AboutMe)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update your profile. Only the flags you pass are changed.

Examples:
  taskflow profile update --name "Alice Smith" --department Platform
  taskflow profile update --about "Keeping the lights on."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/profile")
		if err != nil {
			return err
		}

		var req api.UpdateProfileRequest
		var patch session.ProfilePatch
		changed := false

		setString := func(flag string, wire, local **string) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*wire = &v
				*local = &v
				changed = true
			}
		}
		setString("name", &req.FullName, &patch.FullName)
		setString("phone", &req.PhoneNumber, &patch.PhoneNumber)
		setString("department", &req.Department, &patch.Department)
		setString("about", &req.AboutMe, &patch.AboutMe)
		setString("language", &req.PreferredLanguage, &patch.PreferredLanguage)

		if !changed {
			fmt.Println("Nothing to update.")
			return nil
		}

		if !sess.Demo {
			if _, err := a.client.UpdateProfile(cmd.Context(), req); err != nil {
				return err
			}
		}
		if _, err := a.store.Update(patch); err != nil {
			return err
		}

		fmt.Println("Profile updated.")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("name", "", "full name")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
	profileUpdateCmd.Flags().String("department", "", "department")
	profileUpdateCmd.Flags().String("about", "", "about text")
	profileUpdateCmd.Flags().String("language", "", "preferred language code")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
