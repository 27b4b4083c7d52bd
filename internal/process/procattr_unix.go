//go:build unix && !linux

package process

import (
	"os/exec"
	"syscall"
)

// setProcAttr puts the worker in its own process group so shutdown can
// signal it together with any children it forks.
func setProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
