package supervisor

import (
	"os"
	"os/exec"
	"sync"
	"time"
)

// WorkerHandle references a spawned worker process.
// Its fields are fixed at spawn time; only the exit bookkeeping changes.
type WorkerHandle struct {
	PID       int
	Path      string
	StartTime time.Time

	process *os.Process
	done    chan struct{}
	waitErr error // valid once done is closed
}

// newHandle wraps a started command and reaps it in the background.
// Reaping only releases the OS process entry; nothing reacts to the exit.
func newHandle(cmd *exec.Cmd, path string, start time.Time) *WorkerHandle {
	h := &WorkerHandle{
		PID:       cmd.Process.Pid,
		Path:      path,
		StartTime: start,
		process:   cmd.Process,
		done:      make(chan struct{}),
	}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()
	return h
}

// Process returns the underlying OS process.
func (h *WorkerHandle) Process() *os.Process {
	return h.process
}

// Done is closed once the worker has exited and been reaped.
func (h *WorkerHandle) Done() <-chan struct{} {
	return h.done
}

// Exited reports whether the worker has exited.
func (h *WorkerHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// WaitErr returns the result of Wait, or nil while the worker is running.
func (h *WorkerHandle) WaitErr() error {
	if !h.Exited() {
		return nil
	}
	return h.waitErr
}

// Uptime returns the time since spawn.
func (h *WorkerHandle) Uptime() time.Duration {
	return time.Since(h.StartTime)
}

// HandleSlot holds at most one WorkerHandle. It is safe for concurrent use.
type HandleSlot struct {
	mu     sync.RWMutex
	handle *WorkerHandle
}

// Store replaces the held handle and returns the previous one, if any.
func (s *HandleSlot) Store(h *WorkerHandle) *WorkerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.handle
	s.handle = h
	return prev
}

// Load returns the held handle, or nil when the slot is empty.
func (s *HandleSlot) Load() *WorkerHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

// Empty reports whether no handle has been stored.
func (s *HandleSlot) Empty() bool {
	return s.Load() == nil
}
