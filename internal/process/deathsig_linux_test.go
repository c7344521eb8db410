package process

import (
	"os/exec"
	"syscall"
	"testing"
)

func TestSetProcessGroup_DeathSignal(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	SetProcessGroup(cmd)
	if cmd.SysProcAttr.Pdeathsig != syscall.SIGKILL {
		t.Errorf("Pdeathsig = %v, want SIGKILL", cmd.SysProcAttr.Pdeathsig)
	}
}
