package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	stderrors "errors"

	"github.com/taskflowhq/taskflow/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second), server
}

func TestClient_Login(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("username"); got != "alice@example.com" {
			t.Errorf("unexpected username: %s", got)
		}
		if got := r.PostForm.Get("password"); got != "secret" {
			t.Errorf("unexpected password: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "tok-123",
			TokenType:   "bearer",
			User: User{
				ID:    1,
				Email: "alice@example.com",
				Role:  "user",
			},
		})
	})

	resp, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Errorf("unexpected token: %s", resp.AccessToken)
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("unexpected user email: %s", resp.User.Email)
	}
	if got := client.Token(); got != "tok-123" {
		t.Errorf("token not stored on client: %q", got)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	})

	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("Login() expected error")
	}

	var tfErr *errors.TaskFlowError
	if !stderrors.As(err, &tfErr) {
		t.Fatalf("expected TaskFlowError, got %T", err)
	}
	if tfErr.Code != errors.ErrCodeAPIUnauthorized {
		t.Errorf("unexpected code: %s", tfErr.Code)
	}
	if !strings.Contains(tfErr.Message, "Incorrect email or password") {
		t.Errorf("backend detail not surfaced: %s", tfErr.Message)
	}
}

func TestClient_CompanyLogin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/company-login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("username"); got != "acme" {
			t.Errorf("unexpected username: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "company-tok",
			TokenType:   "bearer",
			User:        User{ID: 7, Email: "ops@acme.test", Role: "admin"},
		})
	})

	resp, err := client.CompanyLogin(context.Background(), "acme", "secret")
	if err != nil {
		t.Fatalf("CompanyLogin() error = %v", err)
	}
	if resp.User.Role != "admin" {
		t.Errorf("unexpected role: %s", resp.User.Role)
	}
}

func TestClient_BearerAndRequestID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: 1, Email: "a@b.c", Role: "user"})
	})
	client.SetToken("tok-abc")

	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
}

func TestClient_UnauthorizedHookFiresOnce(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	})
	client.SetToken("stale")

	fired := 0
	client.SetOnUnauthorized(func() { fired++ })

	for i := 0; i < 3; i++ {
		if _, err := client.CurrentUser(context.Background()); err == nil {
			t.Fatal("expected unauthorized error")
		}
	}
	if fired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", fired)
	}

	// A fresh credential re-arms the hook.
	client.SetToken("fresh")
	if _, err := client.CurrentUser(context.Background()); err == nil {
		t.Fatal("expected unauthorized error")
	}
	if fired != 2 {
		t.Errorf("unauthorized hook fired %d times after new token, want 2", fired)
	}
}

func TestClient_ValidationDetailList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","title"],"msg":"field required","type":"value_error.missing"}]}`))
	})

	_, err := client.CreateTask(context.Background(), CreateTaskRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var tfErr *errors.TaskFlowError
	if !stderrors.As(err, &tfErr) {
		t.Fatalf("expected TaskFlowError, got %T", err)
	}
	if tfErr.Code != errors.ErrCodeAPIValidation {
		t.Errorf("unexpected code: %s", tfErr.Code)
	}
	if !strings.Contains(tfErr.Message, "field required") {
		t.Errorf("validation message not surfaced: %s", tfErr.Message)
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected unreachable error")
	}

	var tfErr *errors.TaskFlowError
	if !stderrors.As(err, &tfErr) {
		t.Fatalf("expected TaskFlowError, got %T", err)
	}
	if tfErr.Code != errors.ErrCodeAPIUnreachable {
		t.Errorf("unexpected code: %s", tfErr.Code)
	}
}

func TestClient_Health(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
}

func TestClient_DashboardAnalytics(t *testing.T) {
	// Body shaped exactly like the backend's /analytics/dashboard handler.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/analytics/dashboard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user_id": 7,
			"total_tasks": 10,
			"completed_tasks": 4,
			"pending_tasks": 3,
			"in_progress_tasks": 3,
			"overdue_tasks": 2,
			"upcoming_tasks": 1,
			"created_tasks": 6,
			"priority_summary": {"high": 2, "medium": 5, "low": 3},
			"average_completion_time_hours": 18.5,
			"recent_activity": {
				"tasks_created_last_7_days": 3,
				"tasks_completed_last_7_days": 2
			}
		}`))
	})

	summary, err := client.DashboardAnalytics(context.Background())
	if err != nil {
		t.Fatalf("DashboardAnalytics() error = %v", err)
	}
	if summary.UserID != 7 || summary.TotalTasks != 10 || summary.OverdueTasks != 2 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.UpcomingTasks != 1 || summary.CreatedTasks != 6 {
		t.Errorf("unexpected scope counts: %+v", summary)
	}
	if summary.PrioritySummary["medium"] != 5 || len(summary.PrioritySummary) != 3 {
		t.Errorf("unexpected priority summary: %v", summary.PrioritySummary)
	}
	if summary.AvgCompletionHours != 18.5 {
		t.Errorf("AvgCompletionHours = %v, want 18.5", summary.AvgCompletionHours)
	}
	if summary.RecentActivity.TasksCreatedLast7Days != 3 || summary.RecentActivity.TasksCompletedLast7Days != 2 {
		t.Errorf("unexpected recent activity: %+v", summary.RecentActivity)
	}
	if got := summary.CompletionRate(); got != 40.0 {
		t.Errorf("CompletionRate() = %v, want 40", got)
	}
}
