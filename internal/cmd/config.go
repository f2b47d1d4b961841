package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage taskflow configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented starter config to the state directory
(default $HOME/.taskflow/config.yaml). Refuses to overwrite an
existing file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		path, err := config.WriteStarter(a.cfg.StateDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		fmt.Printf("api.base_url:          %s\n", a.cfg.API.BaseURL)
		fmt.Printf("api.timeout_seconds:   %d\n", a.cfg.API.TimeoutSeconds)
		fmt.Printf("access.default_policy: %s\n", a.cfg.Access.DefaultPolicy)
		fmt.Printf("demo.enabled:          %t\n", a.cfg.Demo.Enabled)
		fmt.Printf("log.level:             %s\n", a.cfg.Log.Level)
		fmt.Printf("log.format:            %s\n", a.cfg.Log.Format)
		fmt.Printf("state_dir:             %s\n", a.cfg.StateDir)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
