//go:build windows

package exec

import (
	"os/exec"
	"syscall"
)

// detach starts the command in its own process group so console
// control events sent to starling do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
