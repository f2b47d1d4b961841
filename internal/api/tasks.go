package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CreateTaskRequest is the payload for assigning a task to one user.
type CreateTaskRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	AssignedToID int          `json:"assigned_to_id"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	Priority     TaskPriority `json:"priority,omitempty"`
}

// BulkCreateTaskRequest assigns the same task to several users at once.
type BulkCreateTaskRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	AssignedToIDs []int        `json:"assigned_to_ids"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	Priority      TaskPriority `json:"priority,omitempty"`
}

// BulkTaskFailure records one failed assignment in a bulk create.
type BulkTaskFailure struct {
	UserID *int   `json:"user_id"`
	Error  string `json:"error"`
}

// BulkTaskResult is the per-assignee outcome of a bulk create.
type BulkTaskResult struct {
	Successful     []Task            `json:"successful"`
	Failed         []BulkTaskFailure `json:"failed"`
	TotalAttempted int               `json:"total_attempted"`
	SuccessCount   int               `json:"success_count"`
	FailureCount   int               `json:"failure_count"`
}

// UpdateTaskRequest is a partial task update.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
}

// TaskFilter narrows ListTasks. Zero values mean "no filter".
type TaskFilter struct {
	Status       TaskStatus
	AssignedToID int
	CreatedBy    int
	Search       string
	Skip         int
	Limit        int
}

func (f TaskFilter) query() string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.AssignedToID > 0 {
		q.Set("assigned_to_id", strconv.Itoa(f.AssignedToID))
	}
	if f.CreatedBy > 0 {
		q.Set("created_by", strconv.Itoa(f.CreatedBy))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListTasks returns the tasks visible to the caller, already role-scoped by
// the backend (all, company, or own).
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/tasks"+filter.query(), nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := c.parseResponse(resp, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// MyTasks returns tasks assigned to the caller, newest first.
func (c *Client) MyTasks(ctx context.Context, status TaskStatus) ([]Task, error) {
	path := apiPrefix + "/my-tasks"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := c.parseResponse(resp, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id int) (*Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.parseResponse(resp, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask assigns a task to one user.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/tasks", req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.parseResponse(resp, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTasksBulk assigns a task to several users; partial failure is
// reported per assignee, not as an overall error.
func (c *Client) CreateTasksBulk(ctx context.Context, req BulkCreateTaskRequest) (*BulkTaskResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/tasks/bulk", req)
	if err != nil {
		return nil, err
	}

	var result BulkTaskResult
	if err := c.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (*Task, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.parseResponse(resp, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus transitions a task. The backend sets completed_at when the
// new status is completed. Status travels as a query parameter.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int, status TaskStatus) (*Task, error) {
	path := fmt.Sprintf("%s/tasks/%d/status?status=%s", apiPrefix, id, url.QueryEscape(string(status)))
	resp, err := c.doRequest(ctx, http.MethodPut, path, nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.parseResponse(resp, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}
