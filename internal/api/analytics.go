package api

import (
	"context"
	"net/http"
)

// AnalyticsSummary is the backend's per-user analytics aggregate. All counts
// are scoped to the caller: assigned tasks for the status counts, authored
// tasks for CreatedTasks and the created-recently figure.
type AnalyticsSummary struct {
	UserID             int                     `json:"user_id"`
	TotalTasks         int                     `json:"total_tasks"`
	CompletedTasks     int                     `json:"completed_tasks"`
	PendingTasks       int                     `json:"pending_tasks"`
	InProgressTasks    int                     `json:"in_progress_tasks"`
	OverdueTasks       int                     `json:"overdue_tasks"`
	UpcomingTasks      int                     `json:"upcoming_tasks"`
	CreatedTasks       int                     `json:"created_tasks"`
	PrioritySummary    map[string]int          `json:"priority_summary"`
	AvgCompletionHours float64                 `json:"average_completion_time_hours"`
	RecentActivity     AnalyticsRecentActivity `json:"recent_activity"`
}

// AnalyticsRecentActivity is the 7-day throughput block of the aggregate.
type AnalyticsRecentActivity struct {
	TasksCreatedLast7Days   int `json:"tasks_created_last_7_days"`
	TasksCompletedLast7Days int `json:"tasks_completed_last_7_days"`
}

// CompletionRate is the completed share of the caller's assigned tasks, as a
// percentage. The backend does not send it; it is derived here.
func (s *AnalyticsSummary) CompletionRate() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// DashboardAnalytics fetches the caller's analytics aggregate.
func (c *Client) DashboardAnalytics(ctx context.Context) (*AnalyticsSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/analytics/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var summary AnalyticsSummary
	if err := c.parseResponse(resp, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
