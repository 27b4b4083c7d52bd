package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// ParseArgs parses command-line arguments (without the program name) and
// returns a Config. Help output goes to errOut.
func ParseArgs(args []string, errOut io.Writer) (*Config, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, `%s - desktop shell that launches and supervises its backend worker

Usage:
  %s [flags]

Worker Flags:
`, AppName, AppName)
		printFlagCategory(fs, errOut, []string{"worker-name", "stop-timeout"})

		fmt.Fprintf(errOut, "\nHost:\n")
		printFlagCategory(fs, errOut, []string{"name", "tui", "lock-file"})

		fmt.Fprintf(errOut, "\nObservability:\n")
		printFlagCategory(fs, errOut, []string{"metrics", "v", "log-format", "log-file"})

		fmt.Fprintf(errOut, "\nDiagnostics:\n")
		printFlagCategory(fs, errOut, []string{"print-cmd", "preflight"})

		fmt.Fprintf(errOut, `
The build profile and the worker's API key and model are fixed at build time.

Examples:
  # Run with the terminal UI
  %s

  # Headless, with Prometheus metrics
  %s -tui=false -metrics 127.0.0.1:17092

`, AppName, AppName)
	}

	// Worker
	fs.StringVar(&cfg.WorkerName, "worker-name", cfg.WorkerName, "Worker executable base name (default: platform default)")
	fs.DurationVar(&cfg.StopTimeout, "stop-timeout", cfg.StopTimeout, "Time to wait after SIGTERM before killing the worker")

	// Host
	fs.StringVar(&cfg.GreetName, "name", cfg.GreetName, "Name used by the greet command")
	fs.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Enable the terminal UI (default: on when stdout is a terminal)")
	fs.StringVar(&cfg.LockFile, "lock-file", cfg.LockFile, "Single-instance lock file")

	// Observability
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs (and worker output under the TUI) to this file")

	// Diagnostics
	fs.BoolVar(&cfg.PrintCmd, "print-cmd", cfg.PrintCmd, "Print the worker command and exit")
	fs.BoolVar(&cfg.Preflight, "preflight", cfg.Preflight, "Run preflight checks and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(fs *flag.FlagSet, w io.Writer, names []string) {
	fs.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(w, "  -%s %s\n    \t%s", f.Name, flagType(f), f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
					fmt.Fprintf(w, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(w)
				return
			}
		}
	})
}

// flagType returns a type hint for the flag value.
func flagType(f *flag.Flag) string {
	getter, ok := f.Value.(flag.Getter)
	if !ok {
		return "string"
	}
	switch getter.Get().(type) {
	case bool:
		return ""
	case int, int64:
		return "int"
	case time.Duration:
		return "duration"
	default:
		return "string"
	}
}
