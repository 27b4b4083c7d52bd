package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := parseLevel(tc.input); got != tc.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "text", "JSON", "", "invalid"} {
		t.Run(format, func(t *testing.T) {
			if NewLogger(format, "info", false) == nil {
				t.Error("NewLogger returned nil")
			}
		})
	}
}

func TestNewLoggerWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"key":"value"`},
		{"text", "key=value"},
		{"", `"key":"value"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			NewLoggerWithWriter(&buf, tt.format, "info").Info("worker_started", "key", "value")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "text", "warn")

	logger.Info("info msg")
	logger.Warn("warn msg")

	if strings.Contains(buf.String(), "info msg") {
		t.Error("warn level should not log info messages")
	}
	if !strings.Contains(buf.String(), "warn msg") {
		t.Error("warn level should log warn messages")
	}
}

func TestNewLoggerWithWriter_NilWriter(t *testing.T) {
	logger := NewLoggerWithWriter(nil, "text", "info")
	logger.Info("dropped")
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shell.log")

	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}
	NewLoggerWithWriter(f, "text", "info").Info("first")
	f.Close()

	f, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	NewLoggerWithWriter(f, "text", "info").Info("second")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file should be appended to, got %q", data)
	}
}

func TestSetDefault(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(NewLoggerWithWriter(&buf, "text", "info"))
	slog.Info("via default")

	if !strings.Contains(buf.String(), "via default") {
		t.Error("SetDefault did not install the logger")
	}
}

// =============================================================================
// OutputWriter
// =============================================================================

func TestOutputWriter_SplitsLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewOutputWriter("stdout", NewLoggerWithWriter(&buf, "text", "info"))

	w.Write([]byte("INFO:     Uvicorn running\nhalf"))
	w.Write([]byte(" a line\n"))

	got := w.RecentLines(10)
	want := []string{"INFO:     Uvicorn running", "half a line"}
	if len(got) != len(want) {
		t.Fatalf("RecentLines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !strings.Contains(buf.String(), "stream=stdout") {
		t.Errorf("log output missing stream attr: %s", buf.String())
	}
}

func TestOutputWriter_Flush(t *testing.T) {
	w := NewOutputWriter("stderr", NewLoggerWithWriter(nil, "text", "info"))

	w.Write([]byte("no newline"))
	if w.LineCount() != 0 {
		t.Fatal("partial line should be held")
	}
	w.Flush()
	if w.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", w.LineCount())
	}
	w.Flush()
	if w.LineCount() != 1 {
		t.Error("empty flush should not add a line")
	}
}

func TestOutputWriter_CRLF(t *testing.T) {
	w := NewOutputWriter("stdout", NewLoggerWithWriter(nil, "text", "info"))
	w.Write([]byte("windows line\r\n"))
	if got := w.RecentLines(1); len(got) != 1 || got[0] != "windows line" {
		t.Errorf("RecentLines() = %q", got)
	}
}

func TestOutputWriter_Truncation(t *testing.T) {
	w := NewOutputWriter("stdout", NewLoggerWithWriter(nil, "text", "info"))
	w.Write([]byte(strings.Repeat("x", MaxLineLength+10) + "\n"))

	got := w.RecentLines(1)
	if len(got) != 1 {
		t.Fatalf("RecentLines() = %d lines", len(got))
	}
	if !strings.HasSuffix(got[0], "...(truncated)") {
		t.Error("long line should be truncated")
	}
}

func TestOutputWriter_Ring(t *testing.T) {
	w := NewOutputWriter("stdout", NewLoggerWithWriter(nil, "text", "info"))
	for i := 0; i < MaxBufferedLines+5; i++ {
		w.Write([]byte(strings.Repeat("a", i%7+1) + "\n"))
	}

	if got := len(w.RecentLines(MaxBufferedLines * 2)); got != MaxBufferedLines {
		t.Errorf("RecentLines() len = %d, want %d", got, MaxBufferedLines)
	}
	if w.LineCount() != MaxBufferedLines+5 {
		t.Errorf("LineCount() = %d", w.LineCount())
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want slog.Level
	}{
		{"INFO:     Application startup complete.", slog.LevelInfo},
		{"Traceback (most recent call last):", slog.LevelWarn},
		{"ERROR:    Exception in ASGI application", slog.LevelWarn},
		{"WARNING: model not set", slog.LevelWarn},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := classifyLine(tt.line); got != tt.want {
				t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestOutputWriter_Concurrent(t *testing.T) {
	w := NewOutputWriter("stdout", NewLoggerWithWriter(nil, "text", "info"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Write([]byte("line\n"))
				w.RecentLines(5)
			}
		}()
	}
	wg.Wait()

	if w.LineCount() != 800 {
		t.Errorf("LineCount() = %d, want 800", w.LineCount())
	}
}
