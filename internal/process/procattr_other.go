//go:build !unix && !windows

package process

import "os/exec"

func setProcAttr(cmd *exec.Cmd) {}
