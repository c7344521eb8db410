//go:build !windows

// Package process terminates browser process trees left behind by a render.
package process

import (
	"os/exec"
	"syscall"
)

// SetProcessGroup starts cmd as the leader of a new process group so that
// KillProcessGroup reaches every child it spawns. On Linux the child is
// also killed when this process dies. Existing attributes are kept.
func SetProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	setDeathSignal(cmd.SysProcAttr)
}

// KillProcessGroup sends SIGKILL to the process group led by pid. Errors are
// ignored; the browser launcher's own kill runs afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
