package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-sidecar-shell/internal/app"
)

// =============================================================================
// Messages
// =============================================================================

// TickMsg is sent periodically to update the display.
type TickMsg time.Time

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// =============================================================================
// Model
// =============================================================================

// StatusSource provides the host status snapshot.
type StatusSource interface {
	Status() app.Status
}

// Greeter is the greet command exposed by the host.
type Greeter interface {
	Greet(name string) string
}

// Config holds TUI configuration.
type Config struct {
	GreetName    string
	StatusSource StatusSource
	Greeter      Greeter
}

// Model represents the TUI state.
type Model struct {
	greetName    string
	statusSource StatusSource
	greeter      Greeter

	status     app.Status
	greeting   string
	greetCount int
	startTime  time.Time
	lastUpdate time.Time

	width  int
	height int

	quitting bool
}

// New creates a new TUI model.
func New(cfg Config) Model {
	m := Model{
		greetName:    cfg.GreetName,
		statusSource: cfg.StatusSource,
		greeter:      cfg.Greeter,
		startTime:    time.Now(),
		lastUpdate:   time.Now(),
		width:        80,
		height:       24,
	}
	m.refresh()
	return m
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "g":
			if m.greeter != nil {
				m.greeting = m.greeter.Greet(m.greetName)
				m.greetCount++
			}
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderStatusView()
}

func (m *Model) refresh() {
	if m.statusSource == nil {
		return
	}
	m.status = m.statusSource.Status()
	m.lastUpdate = time.Now()
}

// =============================================================================
// Commands
// =============================================================================

// tickCmd returns a command that sends a tick after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// Accessors
// =============================================================================

// Elapsed returns the time since the TUI started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// Greeting returns the last greeting produced by the greet command, or the
// host's default greeting if the command was never invoked.
func (m Model) Greeting() string {
	if m.greeting != "" {
		return m.greeting
	}
	return m.status.Greeting
}

// Quitting reports whether the user asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// =============================================================================
// Helper for external use
// =============================================================================

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// QuitOnSignal quits p when a signal arrives on sigCh. It returns after
// the first signal or once done is closed.
func QuitOnSignal(p *tea.Program, sigCh <-chan os.Signal, done <-chan struct{}) {
	select {
	case <-sigCh:
		SendQuit(p)
	case <-done:
	}
}

// =============================================================================
// Formatting Helpers (used by view.go)
// =============================================================================

// formatDuration formats a duration as HH:MM:SS.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatPID formats a PID, with "-" for none.
func formatPID(pid int) string {
	if pid <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", pid)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
