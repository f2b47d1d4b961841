// Package tui renders the interactive dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow/internal/dashboard"
	"github.com/taskflowhq/taskflow/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

const (
	// ViewLoading shows the spinner while collections are in flight
	ViewLoading ViewType = iota
	// ViewStats is the main dashboard view
	ViewStats
	// ViewError is the failed-load view with a retry affordance
	ViewError
	// ViewHelp is the help screen
	ViewHelp
)

// Model represents the dashboard TUI state
type Model struct {
	loader *dashboard.Loader
	sess   session.Session

	// Derived state
	stats    dashboard.Stats
	errs     dashboard.LoadErrors
	loadedAt time.Time

	// UI state
	currentView ViewType
	spinner     spinner.Model
	recentTable table.Model
	width       int
	height      int
	ready       bool
	quitting    bool

	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	StatBox  lipgloss.Style
	StatNum  lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
}

// NewModel creates the dashboard model for the given session
func NewModel(loader *dashboard.Loader, sess session.Session) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Kind", Width: 12},
		{Title: "Title", Width: 36},
		{Title: "Detail", Width: 24},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
		table.WithFocused(true),
	)

	return Model{
		loader:      loader,
		sess:        sess,
		currentView: ViewLoading,
		spinner:     s,
		recentTable: tbl,
		styles:      DefaultStyles(),
	}
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			MarginRight(1),
		StatNum: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
	}
}

// LoadResultMsg carries a settled dashboard load
type LoadResultMsg struct {
	Collections dashboard.Collections
	Errors      dashboard.LoadErrors
}

// Init starts the spinner and the first load (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load fetches all collections off the UI loop
func (m Model) load() tea.Cmd {
	loader, sess := m.loader, m.sess
	return func() tea.Msg {
		c, errs := loader.Load(context.Background(), sess)
		return LoadResultMsg{Collections: c, Errors: errs}
	}
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case LoadResultMsg:
		m.errs = msg.Errors
		m.loadedAt = time.Now()
		if msg.Errors.Any() {
			m.currentView = ViewError
			return m, nil
		}
		m.stats = dashboard.Compute(m.sess, msg.Collections, time.Now())
		m.recentTable.SetRows(recentRows(m.stats.Recent))
		m.currentView = ViewStats
		return m, nil

	case spinner.TickMsg:
		if m.currentView != ViewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.currentView == ViewStats {
		var cmd tea.Cmd
		m.recentTable, cmd = m.recentTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		if m.currentView == ViewError || m.currentView == ViewStats {
			m.currentView = ViewLoading
			return m, tea.Batch(m.spinner.Tick, m.load())
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = ViewStats
		} else if m.currentView == ViewStats {
			m.currentView = ViewHelp
		}

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = ViewStats
		}
	}

	if m.currentView == ViewStats {
		var cmd tea.Cmd
		m.recentTable, cmd = m.recentTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func recentRows(items []dashboard.RecentItem) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{
			item.Timestamp.Local().Format("Jan 02 15:04"),
			string(item.Kind),
			item.Title,
			item.Detail,
		})
	}
	return rows
}
