package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/randomizedcoder/go-sidecar-shell/internal/supervisor"
)

// =============================================================================
// Tests: GetStateLabel
// =============================================================================

func TestGetStateLabel(t *testing.T) {
	tests := []struct {
		name       string
		state      supervisor.State
		exited     bool
		wantSubstr string
	}{
		{"not started", supervisor.StateNotStarted, false, "not_started"},
		{"spawning", supervisor.StateSpawning, false, "spawning"},
		{"running", supervisor.StateRunning, false, "running"},
		{"running but exited", supervisor.StateRunning, true, "exited"},
		{"stopped", supervisor.StateStopped, false, "stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetStateLabel(tt.state, tt.exited)
			if !strings.Contains(got, tt.wantSubstr) {
				t.Errorf("GetStateLabel(%v, %v) = %q, want to contain %q", tt.state, tt.exited, got, tt.wantSubstr)
			}
		})
	}
}

// =============================================================================
// Tests: GetStateStyle
// =============================================================================

func TestGetStateStyle(t *testing.T) {
	tests := []struct {
		name   string
		state  supervisor.State
		exited bool
		want   string
	}{
		{"running", supervisor.StateRunning, false, "ok"},
		{"running but exited", supervisor.StateRunning, true, "warning"},
		{"spawning", supervisor.StateSpawning, false, "info"},
		{"stopped", supervisor.StateStopped, false, "muted"},
		{"not started", supervisor.StateNotStarted, false, "error"},
	}

	styles := map[string]lipgloss.Style{
		"ok":      statusOK,
		"warning": statusWarning,
		"info":    statusInfo,
		"muted":   mutedStyle,
		"error":   statusError,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetStateStyle(tt.state, tt.exited).GetForeground()
			if want := styles[tt.want].GetForeground(); got != want {
				t.Errorf("GetStateStyle(%v, %v) foreground = %v, want %s (%v)", tt.state, tt.exited, got, tt.want, want)
			}
		})
	}
}

// =============================================================================
// Tests: RenderKeyValue
// =============================================================================

func TestRenderKeyValue(t *testing.T) {
	got := RenderKeyValue("PID", "4242")
	if !strings.Contains(got, "PID:") {
		t.Errorf("RenderKeyValue() = %q, want label", got)
	}
	if !strings.Contains(got, "4242") {
		t.Errorf("RenderKeyValue() = %q, want value", got)
	}
}
