package api

import "time"

// Wire types mirror the backend schema exactly (snake_case JSON). Field
// naming is converted here and nowhere else.

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskPriority is the urgency bucket of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifTaskAssigned        NotificationType = "task_assigned"
	NotifTaskCreatorAssigned NotificationType = "task_creator_assigned"
	NotifTaskStatusUpdated   NotificationType = "task_status_updated"
)

// Company is a tenant.
type Company struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CompanyUsername string    `json:"company_username,omitempty"`
	CompanyEmail    string    `json:"company_email,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// User is an individual account, possibly affiliated with a company.
type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	Company        *Company  `json:"company,omitempty"`
	CanAssignTasks bool      `json:"can_assign_tasks"`

	// Profile extras
	FullName          string `json:"full_name,omitempty"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	Department        string `json:"department,omitempty"`
	AboutMe           string `json:"about_me,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// CompanyID returns the user's tenant id, or 0 without affiliation.
func (u *User) CompanyID() int {
	if u.Company == nil {
		return 0
	}
	return u.Company.ID
}

// Task is a unit of assigned work. Lifecycle is owned by the backend; the
// client only displays it and requests mutations.
type Task struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssignedToID int          `json:"assigned_to_id"`
	CreatedBy    int          `json:"created_by"`
	CompanyID    int          `json:"company_id"`
	CreatedAt    time.Time    `json:"created_at"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`

	// Denormalized display names filled in by the backend
	AssigneeName string `json:"assignee_name,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
}

// Overdue reports whether the task is past due and still open at now.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskCompleted
}

// Notification is a per-user event record.
type Notification struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	TaskID    *int             `json:"task_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// LoginResponse is the payload of both login endpoints.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
