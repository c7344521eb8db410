//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func TestSetProcessGroup(t *testing.T) {
	t.Parallel()

	t.Run("nil attributes", func(t *testing.T) {
		t.Parallel()

		cmd := exec.Command("true")
		SetProcessGroup(cmd)
		if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
			t.Errorf("SysProcAttr = %+v, want Setpgid", cmd.SysProcAttr)
		}
	})

	t.Run("existing attributes kept", func(t *testing.T) {
		t.Parallel()

		attrs := &syscall.SysProcAttr{Setsid: false}
		cmd := exec.Command("true")
		cmd.SysProcAttr = attrs
		SetProcessGroup(cmd)
		if cmd.SysProcAttr != attrs || !attrs.Setpgid {
			t.Errorf("SysProcAttr replaced or Setpgid unset: %+v", cmd.SysProcAttr)
		}
	})
}

func TestKillProcessGroup_ReachesGroupLeader(t *testing.T) {
	t.Parallel()

	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	cmd := exec.Command(sleep, "30") // #nosec G204 -- test binary from PATH
	SetProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	pid := cmd.Process.Pid

	if pgid, err := syscall.Getpgid(pid); err != nil || pgid != pid {
		_ = cmd.Process.Kill()
		t.Fatalf("Getpgid(%d) = %d, %v; want own group", pid, pgid, err)
	}

	KillProcessGroup(pid)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Errorf("Wait() error = %v, want killed process", err)
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process group survived KillProcessGroup")
	}
}
