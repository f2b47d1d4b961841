package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/rbac"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show task analytics",
	Long: `Show the backend's task analytics aggregate for your scope:
completion rate, average turnaround, and recent throughput.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/dashboard")
		if err != nil {
			return err
		}
		if !a.guard.HasPermission(sess.Subject(), rbac.PermViewAnalytics) {
			return errors.NewAccessDeniedError("view analytics")
		}

		summary, err := a.client.DashboardAnalytics(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Tasks:           %d total, %d completed, %d in progress, %d pending\n",
			summary.TotalTasks, summary.CompletedTasks, summary.InProgressTasks, summary.PendingTasks)
		fmt.Printf("Overdue:         %d\n", summary.OverdueTasks)
		fmt.Printf("Due this week:   %d\n", summary.UpcomingTasks)
		fmt.Printf("Created by you:  %d\n", summary.CreatedTasks)
		fmt.Printf("Completion rate: %.1f%%\n", summary.CompletionRate())
		if summary.AvgCompletionHours > 0 {
			fmt.Printf("Avg turnaround:  %.1fh\n", summary.AvgCompletionHours)
		}
		fmt.Printf("Last 7 days:     %d created, %d completed\n",
			summary.RecentActivity.TasksCreatedLast7Days, summary.RecentActivity.TasksCompletedLast7Days)

		if len(summary.PrioritySummary) > 0 {
			priorities := make([]string, 0, len(summary.PrioritySummary))
			for p := range summary.PrioritySummary {
				priorities = append(priorities, p)
			}
			sort.Strings(priorities)
			fmt.Println("By priority:")
			for _, p := range priorities {
				fmt.Printf("  %-8s %d\n", p, summary.PrioritySummary[p])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
