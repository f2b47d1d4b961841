package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/errors"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Browse and manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks visible to you",
	Long: `List tasks. What you see depends on your role: super admins see all
tasks, company admins see their company's tasks, everyone else sees
tasks assigned to them.

Examples:
  taskflow tasks list
  taskflow tasks list --status pending
  taskflow tasks list --mine
  taskflow tasks list --search onboarding`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/tasks")
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		mine, _ := cmd.Flags().GetBool("mine")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		var tasks []api.Task
		if mine || !a.guard.CanViewTeamTasks(sess.Subject()) {
			tasks, err = a.client.MyTasks(cmd.Context(), api.TaskStatus(status))
		} else {
			tasks, err = a.client.ListTasks(cmd.Context(), api.TaskFilter{
				Status: api.TaskStatus(status),
				Search: search,
				Limit:  limit,
			})
		}
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format != "" && format != "text" {
			return formatList(cmd, format, tasks)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-5s %-30s %-12s %-8s %-12s %s\n", "ID", "TITLE", "STATUS", "PRIO", "DUE", "ASSIGNEE")
		for i := range tasks {
			t := &tasks[i]
			due := "-"
			if t.DueDate != nil {
				due = t.DueDate.Local().Format("2006-01-02")
				if t.Overdue(now) {
					due += " !"
				}
			}
			fmt.Printf("%-5d %-30s %-12s %-8s %-12s %s\n",
				t.ID, truncate(t.Title, 30), t.Status, t.Priority, due, t.AssigneeName)
		}
		return nil
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("task id must be a number")
		}

		task, err := a.client.GetTask(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Task #%d: %s\n", task.ID, task.Title)
		fmt.Printf("Status:   %s\n", task.Status)
		fmt.Printf("Priority: %s\n", task.Priority)
		if task.Description != "" {
			fmt.Printf("Description:\n  %s\n", task.Description)
		}
		if task.AssigneeName != "" {
			fmt.Printf("Assignee: %s\n", task.AssigneeName)
		}
		if task.CreatorName != "" {
			fmt.Printf("Creator:  %s\n", task.CreatorName)
		}
		if task.DueDate != nil {
			overdue := ""
			if task.Overdue(time.Now()) {
				overdue = " (overdue)"
			}
			fmt.Printf("Due:      %s%s\n", task.DueDate.Local().Format("2006-01-02"), overdue)
		}
		if task.CompletedAt != nil {
			fmt.Printf("Completed: %s\n", task.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and assign a task",
	Long: `Create a task and assign it to a user. Requires task assignment
permission (admins, or users granted it by their admin).

Examples:
  taskflow tasks create --title "Prepare onboarding" --assignee 12
  taskflow tasks create --title "Quarterly report" --assignee 12 --priority high --due 2025-07-01
  taskflow tasks create --title "Team training" --assignees 12,13,14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		sess, err := a.requireRoute(cmd.Context(), "/tasks/new")
		if err != nil {
			return err
		}
		if !a.guard.CanAssignTasks(sess.Subject()) {
			return errors.NewAccessDeniedError("assign tasks")
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			return errors.NewValidationError("--title is required")
		}
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		dueStr, _ := cmd.Flags().GetString("due")
		assignee, _ := cmd.Flags().GetInt("assignee")
		assigneesStr, _ := cmd.Flags().GetString("assignees")

		var due *time.Time
		if dueStr != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dueStr, time.Local)
			if err != nil {
				return errors.NewValidationError("--due must be YYYY-MM-DD")
			}
			due = &parsed
		}

		if assigneesStr != "" {
			ids, err := parseIDList(assigneesStr)
			if err != nil {
				return err
			}
			result, err := a.client.CreateTasksBulk(cmd.Context(), api.BulkCreateTaskRequest{
				Title:         title,
				Description:   description,
				AssignedToIDs: ids,
				DueDate:       due,
				Priority:      api.TaskPriority(priority),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created %d of %d tasks.\n", result.SuccessCount, result.TotalAttempted)
			for _, f := range result.Failed {
				if f.UserID != nil {
					fmt.Printf("  user %d: %s\n", *f.UserID, f.Error)
				} else {
					fmt.Printf("  %s\n", f.Error)
				}
			}
			return nil
		}

		if assignee == 0 {
			return errors.NewValidationError("--assignee or --assignees is required")
		}

		task, err := a.client.CreateTask(cmd.Context(), api.CreateTaskRequest{
			Title:        title,
			Description:  description,
			AssignedToID: assignee,
			DueDate:      due,
			Priority:     api.TaskPriority(priority),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}

var tasksStatusCmd = &cobra.Command{
	Use:   "status <id> <pending|in_progress|completed>",
	Short: "Change a task's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("task id must be a number")
		}

		status := api.TaskStatus(args[1])
		switch status {
		case api.TaskPending, api.TaskInProgress, api.TaskCompleted:
		default:
			return errors.NewValidationError("status must be pending, in_progress, or completed")
		}

		task, err := a.client.UpdateTaskStatus(cmd.Context(), id, status)
		if err != nil {
			return err
		}
		fmt.Printf("Task #%d is now %s.\n", task.ID, task.Status)
		return nil
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("task id must be a number")
		}

		var req api.UpdateTaskRequest
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			p := api.TaskPriority(v)
			req.Priority = &p
		}
		if cmd.Flags().Changed("due") {
			v, _ := cmd.Flags().GetString("due")
			parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				return errors.NewValidationError("--due must be YYYY-MM-DD")
			}
			req.DueDate = &parsed
		}
		if req.Title == nil && req.Description == nil && req.Priority == nil && req.DueDate == nil {
			return errors.NewValidationError("nothing to update; pass at least one of --title, --description, --priority, --due")
		}

		task, err := a.client.UpdateTask(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("task id must be a number")
		}

		if err := a.client.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted task #%d.\n", id)
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func parseIDList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.NewValidationError("--assignees must be comma-separated user ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	tasksListCmd.Flags().String("status", "", "filter by status (pending, in_progress, completed)")
	tasksListCmd.Flags().Bool("mine", false, "only tasks assigned to you")
	tasksListCmd.Flags().String("search", "", "search in title and description")
	tasksListCmd.Flags().Int("limit", 0, "maximum number of tasks to return")
	tasksListCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")

	tasksCreateCmd.Flags().String("title", "", "task title")
	tasksCreateCmd.Flags().String("description", "", "task description")
	tasksCreateCmd.Flags().String("priority", "medium", "priority (low, medium, high, urgent)")
	tasksCreateCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	tasksCreateCmd.Flags().Int("assignee", 0, "user id to assign the task to")
	tasksCreateCmd.Flags().String("assignees", "", "comma-separated user ids for bulk assignment")

	tasksUpdateCmd.Flags().String("title", "", "new title")
	tasksUpdateCmd.Flags().String("description", "", "new description")
	tasksUpdateCmd.Flags().String("priority", "", "new priority (low, medium, high, urgent)")
	tasksUpdateCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksUpdateCmd)
	tasksCmd.AddCommand(tasksStatusCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
