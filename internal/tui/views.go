package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow/internal/rbac"
)

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewLoading:
		return m.renderLoading()
	case ViewError:
		return m.renderError()
	case ViewHelp:
		return m.renderHelp()
	default:
		return m.renderStats()
	}
}

func (m Model) renderLoading() string {
	return fmt.Sprintf("\n  %s Loading dashboard...\n", m.spinner.View())
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.styles.Error.Render("✗ Failed to load dashboard data"))
	b.WriteString("\n\n")

	if err := m.errs.First(); err != nil {
		b.WriteString("  " + err.Error() + "\n")
	}

	b.WriteString(m.styles.Help.Render(
		m.styles.Key.Render("r") + " retry  " +
			m.styles.Key.Render("q") + " quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderStats() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("TaskFlow Dashboard"))
	b.WriteString("\n")

	who := m.sess.User.Email
	if m.sess.User.FullName != "" {
		who = m.sess.User.FullName
	}
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s · %s", who, m.sess.Role)))
	b.WriteString("\n\n")

	boxes := []string{
		m.statBox("Tasks", m.stats.TotalTasks),
		m.statBox("Pending", m.stats.PendingTasks),
		m.statBox("In Progress", m.stats.InProgressTasks),
		m.statBox("Completed", m.stats.CompletedTasks),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	second := []string{m.overdueBox()}
	if m.stats.DueSoonTasks > 0 {
		second = append(second, m.statBox("Due This Week", m.stats.DueSoonTasks))
	}
	if m.sess.Role == rbac.RoleAdmin || m.sess.Role == rbac.RoleSuperAdmin {
		second = append(second, m.statBox("Users", m.stats.TotalUsers))
	}
	if m.sess.Role == rbac.RoleSuperAdmin {
		second = append(second, m.statBox("Companies", m.stats.TotalCompanies))
	}
	if m.stats.UnreadNotifications > 0 {
		second = append(second, m.statBox("Unread", m.stats.UnreadNotifications))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, second...))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Subtitle.Render("Recent activity"))
	b.WriteString("\n")
	if len(m.stats.Recent) == 0 {
		b.WriteString(m.styles.Muted.Render("  Nothing yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.recentTable.View())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(
		m.styles.Key.Render("r") + " refresh  " +
			m.styles.Key.Render("?") + " help  " +
			m.styles.Key.Render("q") + " quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Help"))
	b.WriteString("\n")

	keys := [][2]string{
		{"r", "reload all dashboard data"},
		{"↑/↓", "scroll recent activity"},
		{"?", "toggle this help"},
		{"esc", "back to dashboard"},
		{"q", "quit"},
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Key.Render(fmt.Sprintf("%-5s", k[0])),
			m.styles.Muted.Render(k[1])))
	}
	return b.String()
}

func (m Model) statBox(label string, n int) string {
	return m.styles.StatBox.Render(
		m.styles.StatNum.Render(fmt.Sprintf("%d", n)) + "\n" + m.styles.Muted.Render(label))
}

func (m Model) overdueBox() string {
	num := fmt.Sprintf("%d", m.stats.OverdueTasks)
	if m.stats.OverdueTasks > 0 {
		num = m.styles.Error.Render(num)
	} else {
		num = m.styles.Success.Render(num)
	}
	return m.styles.StatBox.Render(num + "\n" + m.styles.Muted.Render("Overdue"))
}
