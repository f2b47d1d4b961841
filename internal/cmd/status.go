package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity and session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()

		fmt.Printf("API: %s\n", a.client.BaseURL())
		if err := a.client.Health(cmd.Context()); err != nil {
			fmt.Println("Backend: unreachable")
			return err
		}
		fmt.Println("Backend: ok")

		if err := a.initSession(cmd.Context()); err != nil {
			return err
		}
		sess := a.store.Current()
		if sess.Authenticated {
			fmt.Printf("Session: %s (%s)\n", sess.User.Email, sess.Role)
		} else {
			fmt.Println("Session: not logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
