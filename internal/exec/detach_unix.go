//go:build !windows

package exec

import (
	"os/exec"
	"syscall"
)

// detach puts the command in a new session so it has no controlling
// terminal and survives the parent's exit and terminal hang-ups.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
