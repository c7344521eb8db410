//go:build !windows && !linux

package process

import "syscall"

func setDeathSignal(*syscall.SysProcAttr) {}
