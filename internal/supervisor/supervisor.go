package supervisor

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
	"github.com/randomizedcoder/go-sidecar-shell/internal/process"
)

// DefaultStopTimeout is how long Stop waits after SIGTERM before SIGKILL.
const DefaultStopTimeout = 5 * time.Second

// killWait bounds the wait for the reaper after SIGKILL.
const killWait = 2 * time.Second

// Locator resolves the worker executable path.
type Locator interface {
	Resolve() (string, error)
}

// Callbacks contains optional callback functions for supervisor events.
type Callbacks struct {
	// OnStateChange is called when the supervisor state changes.
	OnStateChange func(oldState, newState State)

	// OnStart is called after the worker is spawned and its handle stored.
	OnStart func(pid int, path string)

	// OnLaunchError is called when a launch fails at the given stage.
	OnLaunchError func(stage string, err error)

	// OnStop is called after Stop terminates a worker.
	OnStop func(pid int, forced bool)
}

// Supervisor launches the worker once and holds its handle.
// It does not restart the worker or react to it exiting.
type Supervisor struct {
	locator   Locator
	runner    process.Runner
	env       func() map[string]string
	logger    *slog.Logger
	callbacks Callbacks

	// State management
	state   State
	stateMu sync.RWMutex

	// launchMu serializes Launch and Stop.
	launchMu sync.Mutex
	slot     HandleSlot
}

// Config holds configuration for creating a new Supervisor.
type Config struct {
	Locator   Locator
	Runner    process.Runner
	Logger    *slog.Logger
	Callbacks Callbacks

	// Env supplies the worker environment (optional - defaults to
	// buildinfo.EmbeddedEnv).
	Env func() map[string]string
}

// New creates a new Supervisor with the given configuration.
func New(cfg Config) *Supervisor {
	env := cfg.Env
	if env == nil {
		env = buildinfo.EmbeddedEnv
	}
	runner := cfg.Runner
	if runner == nil {
		runner = process.NewWorkerRunner()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Supervisor{
		locator:   cfg.Locator,
		runner:    runner,
		env:       env,
		logger:    logger,
		callbacks: cfg.Callbacks,
		state:     StateNotStarted,
	}
}

// Launch resolves, configures and spawns the worker, then stores its handle.
// It returns once the process has started; it never waits for it to exit.
// On failure no handle is stored and the previous state is restored.
// Calling Launch again after a success replaces the stored handle.
func (s *Supervisor) Launch() error {
	s.launchMu.Lock()
	defer s.launchMu.Unlock()

	prevState := s.State()
	s.setState(StateSpawning)

	path, err := s.locator.Resolve()
	if err != nil {
		return s.fail(prevState, StageLocate, fmt.Errorf("locate worker: %w", err))
	}

	cfg := process.NewSpawnConfig(path, s.env())
	cmd, err := s.runner.BuildCommand(cfg)
	if err != nil {
		return s.fail(prevState, StageBuild, &SpawnError{Path: path, Err: err})
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return s.fail(prevState, StageSpawn, &SpawnError{Path: path, Err: err})
	}

	h := newHandle(cmd, path, start)
	if prev := s.slot.Store(h); prev != nil {
		s.logger.Warn("worker_handle_replaced",
			"old_pid", prev.PID,
			"new_pid", h.PID,
		)
	}
	s.setState(StateRunning)

	s.logger.Info("worker_started",
		"pid", h.PID,
		"path", path,
		"runner", s.runner.Name(),
		"env_keys", slices.Sorted(maps.Keys(cfg.Env)),
	)

	if s.callbacks.OnStart != nil {
		s.callbacks.OnStart(h.PID, path)
	}
	return nil
}

// fail restores state after a failed launch and reports the error.
func (s *Supervisor) fail(prevState State, stage string, err error) error {
	s.setState(prevState)
	s.logger.Debug("worker_launch_failed", "stage", stage, "error", err)
	if s.callbacks.OnLaunchError != nil {
		s.callbacks.OnLaunchError(stage, err)
	}
	return err
}

// Stop terminates the stored worker: SIGTERM to its process group, then
// SIGKILL if it has not exited within timeout. Stop with no worker, or
// with a worker that already exited, is a no-op.
func (s *Supervisor) Stop(timeout time.Duration) error {
	s.launchMu.Lock()
	defer s.launchMu.Unlock()

	h := s.slot.Load()
	if h == nil || s.State() == StateStopped {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}

	if h.Exited() {
		s.logger.Info("worker_already_exited", "pid", h.PID, "error", h.WaitErr())
		s.setState(StateStopped)
		return nil
	}

	if err := terminate(h); err != nil {
		s.logger.Debug("worker_terminate_failed", "pid", h.PID, "error", err)
	}

	var stopErr error
	forced := false

	select {
	case <-h.Done():
	case <-time.After(timeout):
		forced = true
		s.logger.Warn("force_killing_worker",
			"pid", h.PID,
			"timeout", timeout.String(),
		)
		if err := kill(h); err != nil {
			s.logger.Debug("worker_kill_failed", "pid", h.PID, "error", err)
		}
		select {
		case <-h.Done():
		case <-time.After(killWait):
		}
		stopErr = errors.New("worker did not exit gracefully")
	}

	s.setState(StateStopped)
	s.logger.Info("worker_stopped",
		"pid", h.PID,
		"forced", forced,
		"uptime", h.Uptime().String(),
	)

	if s.callbacks.OnStop != nil {
		s.callbacks.OnStop(h.PID, forced)
	}
	return stopErr
}

// Handle returns the stored worker handle, or nil if none was spawned.
func (s *Supervisor) Handle() *WorkerHandle {
	return s.slot.Load()
}

// PID returns the stored worker's process ID, or 0 if none.
func (s *Supervisor) PID() int {
	if h := s.slot.Load(); h != nil {
		return h.PID
	}
	return 0
}

// State returns the current state of the supervisor.
func (s *Supervisor) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// setState updates the state and calls the callback if registered.
func (s *Supervisor) setState(newState State) {
	s.stateMu.Lock()
	oldState := s.state
	s.state = newState
	s.stateMu.Unlock()

	if s.callbacks.OnStateChange != nil && oldState != newState {
		s.callbacks.OnStateChange(oldState, newState)
	}
}

// Uptime returns the worker's uptime if running, or 0 if not.
func (s *Supervisor) Uptime() time.Duration {
	h := s.slot.Load()
	if h == nil || s.State() != StateRunning {
		return 0
	}
	return h.Uptime()
}
