// Package dashboard derives the summary view from collections already
// fetched from the backend. All computation is pure and recomputed from
// scratch on every load; the inputs are small and in memory, so there is
// no caching or incremental update.
package dashboard

import (
	"sort"
	"time"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/rbac"
	"github.com/taskflowhq/taskflow/internal/session"
)

const (
	recentTaskCount         = 5
	recentNotificationCount = 5
	recentDisplayLimit      = 8
	upcomingWindow          = 7 * 24 * time.Hour
)

// Collections are the raw inputs, role-scoped by the caller's fetches.
type Collections struct {
	Tasks         []api.Task
	Users         []api.User
	Companies     []api.Company
	Notifications []api.Notification
}

// RecentKind tags an entry in the recency feed.
type RecentKind string

const (
	RecentTask         RecentKind = "task"
	RecentNotification RecentKind = "notification"
)

// RecentItem is one row of the merged recency feed.
type RecentItem struct {
	Kind      RecentKind
	ID        int
	Title     string
	Detail    string
	Timestamp time.Time
}

// Stats is the computed dashboard summary. Ephemeral: derived fresh per
// load, never persisted.
type Stats struct {
	TotalTasks      int
	PendingTasks    int
	InProgressTasks int
	CompletedTasks  int
	OverdueTasks    int

	DueSoonTasks    int
	CreatedByMe     int
	TasksByPriority map[api.TaskPriority]int

	CreatedLast7d      int
	CompletedLast7d    int
	AvgCompletionHours float64

	TotalUsers     int
	ActiveUsers    int
	TotalCompanies int

	UnreadNotifications int

	Recent []RecentItem
}

// Compute derives stats for the session's role scope at the given instant.
//
// super_admin counts everything; admin counts only the caller's company;
// user counts only tasks assigned to the caller. The input collections may
// already be narrower than the role allows (the backend scopes its list
// endpoints too); scoping here is a second, local guarantee.
func Compute(sess session.Session, c Collections, now time.Time) Stats {
	tasks := scopeTasks(sess, c.Tasks)
	users := scopeUsers(sess, c.Users)

	stats := Stats{
		TasksByPriority: make(map[api.TaskPriority]int),
	}

	var completionSum time.Duration
	var completionN int

	for i := range tasks {
		t := &tasks[i]
		stats.TotalTasks++
		switch t.Status {
		case api.TaskPending:
			stats.PendingTasks++
		case api.TaskInProgress:
			stats.InProgressTasks++
		case api.TaskCompleted:
			stats.CompletedTasks++
		}
		if t.Overdue(now) {
			stats.OverdueTasks++
		}
		if t.DueDate != nil && t.Status != api.TaskCompleted &&
			!t.DueDate.Before(now) && t.DueDate.Sub(now) <= upcomingWindow {
			stats.DueSoonTasks++
		}
		if t.CreatedBy == sess.User.ID {
			stats.CreatedByMe++
		}
		if t.Priority != "" {
			stats.TasksByPriority[t.Priority]++
		}
		if now.Sub(t.CreatedAt) <= upcomingWindow {
			stats.CreatedLast7d++
		}
		if t.Status == api.TaskCompleted && t.CompletedAt != nil {
			if now.Sub(*t.CompletedAt) <= upcomingWindow {
				stats.CompletedLast7d++
			}
			if t.CompletedAt.After(t.CreatedAt) {
				completionSum += t.CompletedAt.Sub(t.CreatedAt)
				completionN++
			}
		}
	}

	if completionN > 0 {
		stats.AvgCompletionHours = completionSum.Hours() / float64(completionN)
	}

	stats.TotalUsers = len(users)
	for i := range users {
		if users[i].IsActive {
			stats.ActiveUsers++
		}
	}

	if sess.Role == rbac.RoleSuperAdmin {
		stats.TotalCompanies = len(c.Companies)
	}

	for i := range c.Notifications {
		if !c.Notifications[i].IsRead {
			stats.UnreadNotifications++
		}
	}

	stats.Recent = recentFeed(tasks, c.Notifications)
	return stats
}

func scopeTasks(sess session.Session, tasks []api.Task) []api.Task {
	switch sess.Role {
	case rbac.RoleSuperAdmin:
		return tasks
	case rbac.RoleAdmin:
		companyID := sess.User.CompanyID()
		if companyID == 0 {
			return tasks
		}
		scoped := make([]api.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.CompanyID == companyID {
				scoped = append(scoped, t)
			}
		}
		return scoped
	default:
		scoped := make([]api.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.AssignedToID == sess.User.ID {
				scoped = append(scoped, t)
			}
		}
		return scoped
	}
}

func scopeUsers(sess session.Session, users []api.User) []api.User {
	switch sess.Role {
	case rbac.RoleSuperAdmin:
		return users
	case rbac.RoleAdmin:
		companyID := sess.User.CompanyID()
		if companyID == 0 {
			return users
		}
		scoped := make([]api.User, 0, len(users))
		for _, u := range users {
			if u.CompanyID() == companyID {
				scoped = append(scoped, u)
			}
		}
		return scoped
	default:
		return nil
	}
}

// recentFeed merges the newest tasks and notifications into one list,
// newest first, capped for display.
func recentFeed(tasks []api.Task, notifications []api.Notification) []RecentItem {
	items := make([]RecentItem, 0, recentTaskCount+recentNotificationCount)

	sorted := make([]api.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	for i := 0; i < len(sorted) && i < recentTaskCount; i++ {
		items = append(items, RecentItem{
			Kind:      RecentTask,
			ID:        sorted[i].ID,
			Title:     sorted[i].Title,
			Detail:    string(sorted[i].Status),
			Timestamp: sorted[i].CreatedAt,
		})
	}

	sortedN := make([]api.Notification, len(notifications))
	copy(sortedN, notifications)
	sort.Slice(sortedN, func(i, j int) bool {
		return sortedN[i].CreatedAt.After(sortedN[j].CreatedAt)
	})
	for i := 0; i < len(sortedN) && i < recentNotificationCount; i++ {
		items = append(items, RecentItem{
			Kind:      RecentNotification,
			ID:        sortedN[i].ID,
			Title:     sortedN[i].Title,
			Detail:    sortedN[i].Message,
			Timestamp: sortedN[i].CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > recentDisplayLimit {
		items = items[:recentDisplayLimit]
	}
	return items
}
