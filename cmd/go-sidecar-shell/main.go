// Package main provides the go-sidecar-shell entry point.
//
// go-sidecar-shell is an application shell that, on startup, locates its
// packaged worker executable, launches it with configuration fixed at build
// time, and keeps a handle to it until the shell exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-sidecar-shell/internal/app"
	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
	"github.com/randomizedcoder/go-sidecar-shell/internal/config"
	"github.com/randomizedcoder/go-sidecar-shell/internal/locator"
	"github.com/randomizedcoder/go-sidecar-shell/internal/logging"
	"github.com/randomizedcoder/go-sidecar-shell/internal/preflight"
	"github.com/randomizedcoder/go-sidecar-shell/internal/process"
	"github.com/randomizedcoder/go-sidecar-shell/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-sidecar-shell
//
// The worker's configuration is injected the same way:
//
//	go build -tags release -ldflags "\
//	  -X github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo.apiKey=$OPENROUTER_API_KEY \
//	  -X github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo.model=$OPENROUTER_MODEL" \
//	  ./cmd/go-sidecar-shell
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("%s %s (%s)\n", config.AppName, version, buildinfo.Current)
			return 0
		}
	}

	cfg, err := config.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	if cfg.PrintCmd {
		return printWorkerCommand(cfg)
	}

	if cfg.Preflight {
		result := preflight.RunAll(locator.New(cfg.WorkerName), buildinfo.EmbeddedVars())
		preflight.PrintResults(os.Stdout, result)
		if !result.Passed {
			return 1
		}
		return 0
	}

	logger.Info("starting",
		"version", version,
		"profile", buildinfo.Current.String(),
		"worker_name", cfg.WorkerName,
		"tui", cfg.TUIEnabled,
		"metrics_addr", cfg.MetricsAddr,
	)

	if cfg.TUIEnabled {
		return runTUI(cfg, logger)
	}
	return runHeadless(cfg, logger)
}

// newLogger builds the process logger. When the TUI owns the terminal, logs
// go to the log file if one is set and are discarded otherwise.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := "info"
	if cfg.Verbose {
		level = "debug"
	}

	if cfg.LogFile != "" {
		f, err := logging.OpenLogFile(cfg.LogFile)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerWithWriter(f, cfg.LogFormat, level), func() { f.Close() }, nil
	}

	if cfg.TUIEnabled {
		return logging.NewLoggerWithWriter(io.Discard, cfg.LogFormat, level), func() {}, nil
	}
	return logging.NewLogger(cfg.LogFormat, level, cfg.Verbose), func() {}, nil
}

func runHeadless(cfg *config.Config, logger *slog.Logger) int {
	a := app.New(cfg, logger, version, app.Options{WarnOut: os.Stderr})

	fmt.Fprintf(os.Stderr, "%s %s (%s)\n", config.AppName, version, buildinfo.Current)
	fmt.Fprintln(os.Stderr, a.Greet(cfg.GreetName))
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(os.Stderr, "Metrics: http://%s/metrics\n", cfg.MetricsAddr)
	}
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop.")

	if err := a.RunHeadless(context.Background()); err != nil {
		logger.Error("host_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(cfg *config.Config, logger *slog.Logger) int {
	a := app.New(cfg, logger, version, app.Options{CaptureOutput: true})

	// A hangup closes the TUI so Shutdown still stops the worker.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, app.ShutdownSignals...)
	defer signal.Stop(sigCh)

	if err := a.Setup(context.Background()); err != nil {
		logger.Error("host_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	model := tui.New(tui.Config{
		GreetName:    cfg.GreetName,
		StatusSource: a,
		Greeter:      a,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	done := make(chan struct{})
	go tui.QuitOnSignal(p, sigCh, done)

	exitCode := 0
	if _, err := p.Run(); err != nil {
		logger.Error("tui_failed", "error", err)
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		exitCode = 1
	}
	close(done)

	if err := a.ShutdownWithTimeout(); err != nil {
		logger.Warn("shutdown_incomplete", "error", err)
	}

	// The TUI hid the warning line from the terminal; repeat it once
	// the screen is restored.
	if err := a.StartupError(); err != nil {
		fmt.Fprintln(os.Stderr, app.WarningLine(err))
	}
	return exitCode
}

// printWorkerCommand prints the worker command the host would run.
func printWorkerCommand(cfg *config.Config) int {
	path, err := locator.New(cfg.WorkerName).Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("# Worker command (%s profile):\n", buildinfo.Current)
	fmt.Println()
	fmt.Println(process.CommandString(process.NewSpawnConfig(path, buildinfo.EmbeddedEnv())))
	return 0
}
