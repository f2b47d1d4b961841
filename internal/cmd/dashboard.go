package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/dashboard"
	"github.com/taskflowhq/taskflow/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard: task counts, overdue work, and
recent activity, scoped to your role. Press r to refresh, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/dashboard")
		if err != nil {
			return err
		}

		loader := dashboard.NewLoader(a.client)
		model := tui.NewModel(loader, sess)

		program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
