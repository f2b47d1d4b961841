package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/dashboard"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/rbac"
	"github.com/taskflowhq/taskflow/internal/session"
)

func testSession(role rbac.Role) session.Session {
	return session.Session{
		Authenticated: true,
		User:          api.User{ID: 1, Email: "alice@example.com", FullName: "Alice", Role: string(role)},
		Role:          role,
	}
}

// TestNewModel tests model initialization
func TestNewModel(t *testing.T) {
	model := NewModel(nil, testSession(rbac.RoleUser))

	if model.currentView != ViewLoading {
		t.Errorf("Expected ViewLoading, got %v", model.currentView)
	}

	if model.quitting {
		t.Error("Expected quitting to be false by default")
	}
}

// TestLoadResultMessage tests a successful load transition
func TestLoadResultMessage(t *testing.T) {
	model := NewModel(nil, testSession(rbac.RoleUser))

	msg := LoadResultMsg{
		Collections: dashboard.Collections{
			Tasks: []api.Task{
				{ID: 1, Title: "Ship release", AssignedToID: 1, Status: api.TaskPending, CreatedAt: time.Now()},
			},
		},
	}

	updatedModel, _ := model.Update(msg)
	m := updatedModel.(Model)

	if m.currentView != ViewStats {
		t.Errorf("Expected ViewStats, got %v", m.currentView)
	}

	if m.stats.TotalTasks != 1 {
		t.Errorf("Expected 1 total task, got %d", m.stats.TotalTasks)
	}
}

// TestLoadFailureShowsError tests the failed-load transition
func TestLoadFailureShowsError(t *testing.T) {
	model := NewModel(nil, testSession(rbac.RoleUser))

	msg := LoadResultMsg{
		Errors: dashboard.LoadErrors{
			Tasks: errors.New(errors.ErrCodeAPIServer, "backend exploded"),
		},
	}

	updatedModel, _ := model.Update(msg)
	m := updatedModel.(Model)

	if m.currentView != ViewError {
		t.Errorf("Expected ViewError, got %v", m.currentView)
	}

	view := m.View()
	if !strings.Contains(view, "backend exploded") {
		t.Error("Expected error detail in view")
	}
	if !strings.Contains(view, "retry") {
		t.Error("Expected retry affordance in error view")
	}
}

// TestQuitKeys tests quit handling
func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		model := NewModel(nil, testSession(rbac.RoleUser))

		var msg tea.KeyMsg
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		updatedModel, cmd := model.Update(msg)
		m := updatedModel.(Model)

		if !m.quitting {
			t.Errorf("Expected quitting after %q", key)
		}
		if cmd == nil {
			t.Errorf("Expected tea.Quit command after %q", key)
		}
	}
}

// TestStatsViewContents tests the rendered dashboard
func TestStatsViewContents(t *testing.T) {
	model := NewModel(nil, testSession(rbac.RoleSuperAdmin))

	msg := LoadResultMsg{
		Collections: dashboard.Collections{
			Tasks: []api.Task{
				{ID: 1, Title: "Audit accounts", Status: api.TaskPending, CreatedAt: time.Now()},
			},
			Users:     []api.User{{ID: 1, IsActive: true}},
			Companies: []api.Company{{ID: 1}},
		},
	}

	updatedModel, _ := model.Update(msg)
	m := updatedModel.(Model)

	view := m.View()
	if !strings.Contains(view, "TaskFlow Dashboard") {
		t.Error("Expected dashboard title")
	}
	if !strings.Contains(view, "Companies") {
		t.Error("Expected company count for super_admin")
	}
	if !strings.Contains(view, "Audit accounts") {
		t.Error("Expected recent task title in activity feed")
	}
}

// TestHelpToggle tests the help view toggle
func TestHelpToggle(t *testing.T) {
	model := NewModel(nil, testSession(rbac.RoleUser))
	model.currentView = ViewStats

	updatedModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m := updatedModel.(Model)
	if m.currentView != ViewHelp {
		t.Errorf("Expected ViewHelp, got %v", m.currentView)
	}

	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updatedModel.(Model)
	if m.currentView != ViewStats {
		t.Errorf("Expected ViewStats after esc, got %v", m.currentView)
	}
}
