package app

import (
	"time"

	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
	"github.com/randomizedcoder/go-sidecar-shell/internal/supervisor"
)

// recentOutputLines is how many worker output lines Status carries.
const recentOutputLines = 5

// Status is a point-in-time view of the host for display.
type Status struct {
	Version     string
	LaunchID    string
	Profile     buildinfo.Profile
	State       supervisor.State
	PID         int
	WorkerPath  string
	Uptime      time.Duration
	Exited      bool
	Warning     string
	Greeting    string
	MetricsAddr string
	Output      []string
}

// Status returns a snapshot of the host and its worker.
func (a *App) Status() Status {
	s := Status{
		Version:     a.version,
		LaunchID:    a.launchID,
		Profile:     buildinfo.Current,
		State:       a.supervisor.State(),
		Greeting:    a.Greet(a.cfg.GreetName),
		MetricsAddr: a.MetricsAddr(),
	}

	if h := a.supervisor.Handle(); h != nil {
		s.PID = h.PID
		s.WorkerPath = h.Path
		s.Exited = h.Exited()
		s.Uptime = a.supervisor.Uptime()
	}

	if err := a.StartupError(); err != nil {
		s.Warning = WarningLine(err)
	}

	if a.workerStdout != nil {
		s.Output = append(s.Output, a.workerStdout.RecentLines(recentOutputLines)...)
		s.Output = append(s.Output, a.workerStderr.RecentLines(recentOutputLines)...)
	}
	return s
}
