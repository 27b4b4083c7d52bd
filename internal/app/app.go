// Package app is the host application: it owns the worker supervisor for
// the lifetime of the process, launches the worker during setup, exposes
// the greet command, and terminates the worker on exit.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
	"github.com/randomizedcoder/go-sidecar-shell/internal/config"
	"github.com/randomizedcoder/go-sidecar-shell/internal/locator"
	"github.com/randomizedcoder/go-sidecar-shell/internal/logging"
	"github.com/randomizedcoder/go-sidecar-shell/internal/metrics"
	"github.com/randomizedcoder/go-sidecar-shell/internal/process"
	"github.com/randomizedcoder/go-sidecar-shell/internal/supervisor"
)

// minStopTimeout bounds the grace period when the shutdown deadline has
// already passed; the worker is then killed almost immediately.
const minStopTimeout = 10 * time.Millisecond

// ErrAlreadyRunning is returned by Setup when another host holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Options overrides collaborators. Zero values select the real ones.
type Options struct {
	// Locator resolves the worker path (default: locator.New(cfg.WorkerName)).
	Locator supervisor.Locator

	// Env supplies the worker environment (default: buildinfo.EmbeddedEnv).
	Env func() map[string]string

	// WarnOut receives the human-readable startup warning.
	// Nil suppresses it (the TUI shows the warning instead).
	WarnOut io.Writer

	// CaptureOutput routes worker stdout/stderr into the log instead of
	// the host terminal. Required while the TUI owns the screen.
	CaptureOutput bool
}

// App is the long-lived application context.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	version  string
	launchID string
	warnOut  io.Writer

	locator    supervisor.Locator
	supervisor *supervisor.Supervisor

	registry      *prometheus.Registry
	metrics       *metrics.Collector
	metricsServer *metrics.Server

	lock *flock.Flock

	workerStdout *logging.OutputWriter
	workerStderr *logging.OutputWriter

	mu         sync.RWMutex
	startupErr error
	setupDone  bool
	shutdown   bool
}

// New creates the application context. Nothing is started until Setup.
func New(cfg *config.Config, logger *slog.Logger, version string, opts Options) *App {
	launchID := uuid.NewString()
	logger = logger.With("launch_id", launchID)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		version:  version,
		launchID: launchID,
		warnOut:  opts.WarnOut,
		locator:  opts.Locator,
		registry: prometheus.NewRegistry(),
		lock:     flock.New(cfg.LockFile),
	}
	if a.locator == nil {
		a.locator = locator.New(cfg.WorkerName)
	}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.NewCollectorWithRegistry(metrics.CollectorConfig{
		Version: version,
		Profile: buildinfo.Current.String(),
	}, a.registry)

	runner := process.NewWorkerRunner()
	if opts.CaptureOutput {
		a.workerStdout = logging.NewOutputWriter("stdout", logger)
		a.workerStderr = logging.NewOutputWriter("stderr", logger)
		runner.Stdout = a.workerStdout
		runner.Stderr = a.workerStderr
	}

	a.supervisor = supervisor.New(supervisor.Config{
		Locator: a.locator,
		Runner:  runner,
		Env:     opts.Env,
		Logger:  logger,
		Callbacks: supervisor.Callbacks{
			OnStart: func(pid int, path string) {
				a.metrics.WorkerStarted(pid, time.Now())
			},
			OnLaunchError: func(stage string, err error) {
				a.metrics.LaunchFailed(stage)
			},
			OnStop: func(pid int, forced bool) {
				a.metrics.WorkerStopped(forced)
			},
		},
	})

	if cfg.MetricsAddr != "" {
		a.metricsServer = metrics.NewServer(cfg.MetricsAddr, a.registry, a.WorkerReady, logger)
	}

	return a
}

// Setup runs the host's startup hook. It fails only when the host itself
// cannot start (instance lock, metrics listener). A worker that fails to
// launch is reported as a warning and startup continues without it.
func (a *App) Setup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.acquireLock(); err != nil {
		return err
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Start(); err != nil {
			a.releaseLock()
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	a.metrics.LaunchAttempted()
	err := a.supervisor.Launch()

	a.mu.Lock()
	a.startupErr = err
	a.setupDone = true
	a.mu.Unlock()

	if err != nil {
		a.logger.Warn("worker_start_failed", "error", err)
		if a.warnOut != nil {
			fmt.Fprintln(a.warnOut, WarningLine(err))
		}
	}
	return nil
}

// WarningLine formats the operator-facing message for a failed launch.
func WarningLine(err error) string {
	return fmt.Sprintf("Warning: Failed to start worker: %v", err)
}

func (a *App) acquireLock() error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.LockFile), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := a.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, a.cfg.LockFile)
	}
	a.logger.Debug("instance_lock_acquired", "path", a.cfg.LockFile)
	return nil
}

func (a *App) releaseLock() {
	if err := a.lock.Unlock(); err != nil {
		a.logger.Warn("failed to release instance lock", "error", err)
	}
}

// Greet is the command exposed to the UI.
func (a *App) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// Shutdown runs the host's exit hook: terminate the worker, stop the
// metrics server, release the instance lock. It is safe to call twice.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	if a.shutdown || !a.setupDone {
		a.mu.Unlock()
		return nil
	}
	a.shutdown = true
	a.mu.Unlock()

	var errs []error

	timeout := a.cfg.StopTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = max(remaining, minStopTimeout)
		}
	}
	if err := a.supervisor.Stop(timeout); err != nil {
		errs = append(errs, fmt.Errorf("stop worker: %w", err))
	}
	if a.workerStdout != nil {
		a.workerStdout.Flush()
		a.workerStderr.Flush()
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	a.releaseLock()
	a.logger.Info("shutdown_complete")
	return errors.Join(errs...)
}

// WorkerReady reports whether the worker was launched and not stopped.
func (a *App) WorkerReady() bool {
	return a.supervisor.State() == supervisor.StateRunning
}

// Supervisor returns the worker supervisor.
func (a *App) Supervisor() *supervisor.Supervisor {
	return a.supervisor
}

// Registry returns the app's Prometheus registry.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// MetricsAddr returns the metrics listener address, or "" when disabled.
func (a *App) MetricsAddr() string {
	if a.metricsServer == nil {
		return ""
	}
	return a.metricsServer.Addr()
}

// LaunchID returns this run's identifier.
func (a *App) LaunchID() string {
	return a.launchID
}

// StartupError returns the worker launch error from Setup, if any.
func (a *App) StartupError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.startupErr
}
