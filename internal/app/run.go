package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownGrace is added to the worker stop timeout for the rest of teardown.
const shutdownGrace = 5 * time.Second

// ShutdownSignals end the host and, through Shutdown, the worker.
// SIGHUP is included because the worker runs in its own process group and
// does not see the terminal hang up.
var ShutdownSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}

// RunHeadless runs the host without a UI: setup, wait for a signal or ctx
// cancellation, then shut down.
func (a *App) RunHeadless(ctx context.Context) error {
	// Subscribe before launching so a signal during setup still stops the worker.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, ShutdownSignals...)
	defer signal.Stop(sigCh)

	if err := a.Setup(ctx); err != nil {
		return err
	}

	a.logger.Info("host_running",
		"worker_state", a.supervisor.State().String(),
		"pid", a.supervisor.PID(),
	)

	select {
	case sig := <-sigCh:
		a.logger.Info("received_signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context_cancelled")
	}

	return a.ShutdownWithTimeout()
}

// ShutdownWithTimeout runs Shutdown bounded by the configured stop timeout.
func (a *App) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.StopTimeout+shutdownGrace)
	defer cancel()
	return a.Shutdown(ctx)
}
