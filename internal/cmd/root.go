package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/config"
	"github.com/taskflowhq/taskflow/internal/log"
)

var (
	cfgFile string
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Multi-tenant task management from the terminal",
	Long: `taskflow is the terminal client for the TaskFlow platform.

Log in with your personal account or a company account, browse your
dashboard, and manage tasks, users, companies, and notifications —
what you can see and do is determined by your role.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		log.SetDefaultLogger(log.New(log.Config{
			Level:  log.ParseLevel(cfg.Log.Level),
			Format: log.ParseFormat(cfg.Log.Format),
			Output: log.NewOutput(cmd.ErrOrStderr()),
		}))

		setApp(newApp(cfg))
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.taskflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "TaskFlow API base URL (overrides config)")
}
