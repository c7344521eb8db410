//go:build windows

// Package process terminates browser process trees left behind by a render.
package process

import (
	"os/exec"
	"strconv"
)

// SetProcessGroup is a no-op on Windows: taskkill /T walks the child tree
// from the parent pid.
func SetProcessGroup(*exec.Cmd) {}

// KillProcessGroup force-kills pid and its children with taskkill. Errors
// are ignored; the browser launcher's own kill runs afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
