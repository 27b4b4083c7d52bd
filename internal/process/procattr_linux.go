//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// setProcAttr puts the worker in its own process group so shutdown can
// signal it together with any children it forks. Pdeathsig stops the
// worker if the host dies without running its shutdown path.
// Pdeathsig is tied to the forking OS thread: do not spawn from a
// goroutine holding runtime.LockOSThread.
func setProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
