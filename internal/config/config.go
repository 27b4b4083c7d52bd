// Package config provides configuration management for go-sidecar-shell.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
)

// AppName names the binary and its cache directory.
const AppName = "go-sidecar-shell"

// Config holds all runtime options for the host application.
// Build profile and worker secrets are not here: they are fixed at build time.
type Config struct {
	// Worker
	WorkerName  string        `json:"worker_name"` // "" = platform default
	StopTimeout time.Duration `json:"stop_timeout"`

	// Host
	GreetName  string `json:"greet_name"`
	TUIEnabled bool   `json:"tui_enabled"`
	LockFile   string `json:"lock_file"`

	// Observability
	MetricsAddr string `json:"metrics_addr"` // "" = disabled
	Verbose     bool   `json:"verbose"`
	LogFormat   string `json:"log_format"` // json, text
	LogFile     string `json:"log_file"`   // "" = stderr

	// Diagnostic modes
	PrintCmd  bool `json:"print_cmd"`
	Preflight bool `json:"preflight"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StopTimeout: 5 * time.Second,

		GreetName:  "World",
		TUIEnabled: stdoutIsTerminal(),
		LockFile:   defaultLockFile(),

		LogFormat: "json",
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// defaultLockFile places the instance lock in the user cache directory,
// falling back to the temp directory when there is none.
func defaultLockFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName, "shell.lock")
}
