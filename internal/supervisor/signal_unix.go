//go:build unix

package supervisor

import (
	"golang.org/x/sys/unix"
)

// terminate asks the worker's process group to exit.
func terminate(h *WorkerHandle) error {
	return signalGroup(h.PID, unix.SIGTERM)
}

// kill force-stops the worker's process group.
func kill(h *WorkerHandle) error {
	return signalGroup(h.PID, unix.SIGKILL)
}

// signalGroup signals the whole group only when the worker leads it, so a
// worker sharing the host's group never takes the host down with it.
func signalGroup(pid int, sig unix.Signal) error {
	if pgid, err := unix.Getpgid(pid); err == nil && pgid == pid {
		return unix.Kill(-pgid, sig)
	}
	return unix.Kill(pid, sig)
}
