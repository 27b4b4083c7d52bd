package config

import (
	"bytes"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"WorkerName", cfg.WorkerName, ""},
		{"StopTimeout", cfg.StopTimeout, 5 * time.Second},
		{"GreetName", cfg.GreetName, "World"},
		{"MetricsAddr", cfg.MetricsAddr, ""},
		{"LogFormat", cfg.LogFormat, "json"},
		{"LogFile", cfg.LogFile, ""},
		{"PrintCmd", cfg.PrintCmd, false},
		{"Preflight", cfg.Preflight, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if filepath.Base(cfg.LockFile) != "shell.lock" {
		t.Errorf("LockFile = %q, want shell.lock base", cfg.LockFile)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "no args",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				if cfg.GreetName != "World" {
					t.Errorf("GreetName = %q", cfg.GreetName)
				}
			},
		},
		{
			name: "worker flags",
			args: []string{"-worker-name", "backend", "-stop-timeout", "2s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.WorkerName != "backend" {
					t.Errorf("WorkerName = %q", cfg.WorkerName)
				}
				if cfg.StopTimeout != 2*time.Second {
					t.Errorf("StopTimeout = %v", cfg.StopTimeout)
				}
			},
		},
		{
			name: "host and observability",
			args: []string{"-tui=false", "-name", "Ada", "-metrics", "127.0.0.1:17092", "-v", "-log-format", "text", "-log-file", "/tmp/shell.log"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.TUIEnabled {
					t.Error("TUIEnabled should be false")
				}
				if cfg.GreetName != "Ada" {
					t.Errorf("GreetName = %q", cfg.GreetName)
				}
				if cfg.MetricsAddr != "127.0.0.1:17092" {
					t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
				}
				if !cfg.Verbose {
					t.Error("Verbose should be true")
				}
				if cfg.LogFormat != "text" {
					t.Errorf("LogFormat = %q", cfg.LogFormat)
				}
				if cfg.LogFile != "/tmp/shell.log" {
					t.Errorf("LogFile = %q", cfg.LogFile)
				}
			},
		},
		{
			name: "diagnostics",
			args: []string{"--print-cmd", "--preflight"},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.PrintCmd || !cfg.Preflight {
					t.Errorf("PrintCmd=%v Preflight=%v", cfg.PrintCmd, cfg.Preflight)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, err := ParseArgs(tt.args, &out)
			if err != nil {
				t.Fatalf("ParseArgs() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-clients", "5"}},
		{"bad duration", []string{"-stop-timeout", "soon"}},
		{"positional", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := ParseArgs(tt.args, &out); err == nil {
				t.Error("ParseArgs() should fail")
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseArgs([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseArgs(-h) error = %v, want flag.ErrHelp", err)
	}

	usage := out.String()
	for _, want := range []string{"Worker Flags:", "-worker-name", "-stop-timeout duration", "-metrics string", "fixed at build time"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantField string
	}{
		{"valid", func(cfg *Config) {}, ""},
		{"worker path", func(cfg *Config) { cfg.WorkerName = "bin/main" }, "worker_name"},
		{"zero stop timeout", func(cfg *Config) { cfg.StopTimeout = 0 }, "stop_timeout"},
		{"blank name", func(cfg *Config) { cfg.GreetName = "  " }, "greet_name"},
		{"no lock file", func(cfg *Config) { cfg.LockFile = "" }, "lock_file"},
		{"bad metrics addr", func(cfg *Config) { cfg.MetricsAddr = "localhost" }, "metrics_addr"},
		{"good metrics addr", func(cfg *Config) { cfg.MetricsAddr = ":17092" }, ""},
		{"bad log format", func(cfg *Config) { cfg.LogFormat = "xml" }, "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LockFile = "/tmp/test.lock"
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}

			var vErr ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopTimeout = -1
	cfg.LogFormat = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	msg := err.Error()
	if !strings.Contains(msg, "stop_timeout") || !strings.Contains(msg, "log_format") {
		t.Errorf("error should report both fields: %q", msg)
	}
}
