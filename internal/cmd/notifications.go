package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/errors"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notifs"},
	Short:   "View and manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/notifications"); err != nil {
			return err
		}

		unreadOnly, _ := cmd.Flags().GetBool("unread")
		notifications, err := a.client.ListNotifications(cmd.Context(), unreadOnly)
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format != "" && format != "text" {
			return formatList(cmd, format, notifications)
		}

		if len(notifications) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		for i := range notifications {
			n := &notifications[i]
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s #%-4d %-16s %s — %s\n",
				marker, n.ID, n.CreatedAt.Local().Format("Jan 02 15:04"), n.Title, n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/notifications"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("notification id must be a number")
		}

		if _, err := a.client.MarkNotificationRead(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Marked notification #%d as read.\n", id)
		return nil
	},
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if _, err := a.requireRoute(cmd.Context(), "/notifications"); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("notification id must be a number")
		}

		if err := a.client.DeleteNotification(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted notification #%d.\n", id)
		return nil
	},
}

func init() {
	notificationsListCmd.Flags().Bool("unread", false, "only unread notifications")
	notificationsListCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	rootCmd.AddCommand(notificationsCmd)
}
