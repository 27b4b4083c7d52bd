// Package process provides abstractions for launching the worker executable.
package process

import (
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// Runner creates executable commands for the worker.
// This interface allows the supervisor to be process-agnostic.
type Runner interface {
	// BuildCommand returns a ready-to-start command for the given config.
	// The command should NOT be started yet.
	BuildCommand(cfg SpawnConfig) (*exec.Cmd, error)

	// Name returns a human-readable name for this process type.
	Name() string
}

// SpawnConfig describes one launch of the worker.
type SpawnConfig struct {
	// Path is the resolved worker executable.
	Path string

	// Env holds the variables added on top of the host environment.
	// Keys that were not provided at build time are absent.
	Env map[string]string
}

// NewSpawnConfig returns a config owning a copy of env.
func NewSpawnConfig(path string, env map[string]string) SpawnConfig {
	return SpawnConfig{
		Path: path,
		Env:  maps.Clone(env),
	}
}

// EnvList returns Env as sorted KEY=VALUE pairs.
func (c SpawnConfig) EnvList() []string {
	list := make([]string, 0, len(c.Env))
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		list = append(list, k+"="+c.Env[k])
	}
	return list
}

// WorkerRunner implements Runner for the packaged worker executable.
type WorkerRunner struct {
	// Stdout and Stderr receive the worker's output streams.
	// Nil means the host's own stdout/stderr are inherited.
	Stdout io.Writer
	Stderr io.Writer
}

// NewWorkerRunner creates a runner that inherits the host's output streams.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{}
}

// Name returns "worker".
func (r *WorkerRunner) Name() string {
	return "worker"
}

// BuildCommand creates an exec.Cmd that runs the worker with no arguments.
// The command is not bound to a context: the worker outlives the setup call.
func (r *WorkerRunner) BuildCommand(cfg SpawnConfig) (*exec.Cmd, error) {
	if cfg.Path == "" {
		return nil, errors.New("worker path is empty")
	}

	cmd := exec.Command(cfg.Path)
	cmd.Env = append(os.Environ(), cfg.EnvList()...)

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	setProcAttr(cmd)
	return cmd, nil
}

// CommandString returns a shell-like rendering of the launch with
// secret-looking values redacted.
func CommandString(cfg SpawnConfig) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(cfg.Env)) {
		v := cfg.Env[k]
		if isSecret(k) {
			v = "<redacted>"
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
		b.WriteByte(' ')
	}
	b.WriteString(cfg.Path)
	return b.String()
}

func isSecret(key string) bool {
	upper := strings.ToUpper(key)
	for _, marker := range []string{"KEY", "TOKEN", "SECRET", "PASSWORD"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
