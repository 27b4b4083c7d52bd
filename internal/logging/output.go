package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

const (
	// MaxLineLength is the maximum length of a single output line before truncation.
	MaxLineLength = 4096

	// MaxBufferedLines is the number of recent worker lines kept for display.
	MaxBufferedLines = 100
)

// OutputWriter receives a worker output stream when the host cannot let the
// worker write to the terminal directly (the TUI owns it). Each complete
// line is logged and kept in a small ring for display.
type OutputWriter struct {
	stream string
	logger *slog.Logger

	mu      sync.Mutex
	partial []byte
	buffer  []string
	bufIdx  int
	count   int
}

// NewOutputWriter creates a writer for the named stream ("stdout"/"stderr").
func NewOutputWriter(stream string, logger *slog.Logger) *OutputWriter {
	return &OutputWriter{
		stream: stream,
		logger: logger,
		buffer: make([]string, MaxBufferedLines),
	}
}

// Write implements io.Writer. Incomplete trailing data is held until the
// next newline or Flush.
func (w *OutputWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.partial = append(w.partial, p...)
	var lines []string
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}
	if len(w.partial) > MaxLineLength {
		lines = append(lines, string(w.partial))
		w.partial = nil
	}
	w.mu.Unlock()

	for _, line := range lines {
		w.handleLine(line)
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *OutputWriter) Flush() {
	w.mu.Lock()
	line := string(w.partial)
	w.partial = nil
	w.mu.Unlock()

	if line != "" {
		w.handleLine(line)
	}
}

func (w *OutputWriter) handleLine(line string) {
	line = strings.TrimRight(line, "\r")
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength] + "...(truncated)"
	}

	w.mu.Lock()
	w.buffer[w.bufIdx] = line
	w.bufIdx = (w.bufIdx + 1) % MaxBufferedLines
	w.count++
	w.mu.Unlock()

	w.logger.Log(context.Background(), classifyLine(line), "worker_output",
		"stream", w.stream,
		"line", line,
	)
}

// classifyLine picks a log level from the line content.
func classifyLine(line string) slog.Level {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "traceback"),
		strings.Contains(lower, "error"),
		strings.Contains(lower, "exception"):
		return slog.LevelWarn
	case strings.Contains(lower, "warning"):
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RecentLines returns up to n of the most recent lines, oldest first.
func (w *OutputWriter) RecentLines(n int) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n > MaxBufferedLines {
		n = MaxBufferedLines
	}
	if n > w.count {
		n = w.count
	}

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := (w.bufIdx - n + i + MaxBufferedLines) % MaxBufferedLines
		lines = append(lines, w.buffer[idx])
	}
	return lines
}

// LineCount returns the total number of lines seen.
func (w *OutputWriter) LineCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
