package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Main View Rendering
// =============================================================================

func (m Model) renderStatusView() string {
	sections := []string{
		m.renderHeader(),
		m.renderWorker(),
		m.renderGreeting(),
	}
	if m.status.Warning != "" {
		sections = append(sections, m.renderWarning())
	}
	if len(m.status.Output) > 0 {
		sections = append(sections, m.renderOutput())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// Header
// =============================================================================

func (m Model) renderHeader() string {
	header := fmt.Sprintf(
		" go-sidecar-shell │ %s │ %s │ Elapsed: %s ",
		m.status.Profile,
		GetStateLabel(m.status.State, m.status.Exited),
		formatDuration(m.Elapsed()),
	)
	return headerStyle.Width(m.width).Render(header)
}

// =============================================================================
// Worker Section
// =============================================================================

func (m Model) renderWorker() string {
	path := m.status.WorkerPath
	if path == "" {
		path = "-"
	}
	uptime := "-"
	if m.status.PID > 0 {
		uptime = formatDuration(m.status.Uptime)
	}

	rows := []string{
		sectionHeaderStyle.Render("Worker"),
		RenderKeyValue("Profile", m.status.Profile.String()),
		RenderKeyValue("Binary", truncate(path, m.width-22)),
		RenderKeyValue("State", GetStateLabel(m.status.State, m.status.Exited)),
		RenderKeyValue("PID", formatPID(m.status.PID)),
		RenderKeyValue("Uptime", uptime),
	}
	if m.status.MetricsAddr != "" {
		rows = append(rows, RenderKeyValue("Metrics", "http://"+m.status.MetricsAddr+"/metrics"))
	}

	return boxStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// =============================================================================
// Greeting
// =============================================================================

func (m Model) renderGreeting() string {
	greeting := m.Greeting()
	if greeting == "" {
		greeting = dimStyle.Render("press g to greet")
	} else {
		greeting = greetingStyle.Render(greeting)
	}
	return boxStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("Greeting"),
		greeting,
	))
}

// =============================================================================
// Warning
// =============================================================================

func (m Model) renderWarning() string {
	return boxStyle.
		BorderForeground(colorWarning).
		Width(m.width - 2).
		Render(statusWarning.Render(m.status.Warning))
}

// =============================================================================
// Worker Output
// =============================================================================

func (m Model) renderOutput() string {
	rows := []string{sectionHeaderStyle.Render("Worker Output")}
	for _, line := range m.status.Output {
		rows = append(rows, mutedStyle.Render(truncate(line, m.width-6)))
	}
	return boxStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// =============================================================================
// Footer
// =============================================================================

func (m Model) renderFooter() string {
	shortcuts := []string{
		"q: quit",
		"g: greet",
		"r: refresh",
	}

	left := dimStyle.Render(strings.Join(shortcuts, " │ "))
	right := dimStyle.Render("Launch: " + m.status.LaunchID)

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return footerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Left,
			left,
			strings.Repeat(" ", padding),
			right,
		),
	)
}
