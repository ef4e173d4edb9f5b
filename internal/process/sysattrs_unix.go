//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// configureDetached starts the child in a new session (setsid) so it is
// detached from the controlling terminal and survives the manager exiting.
// As session leader the child is also its own process group leader, which
// is what Terminate relies on for group signaling.
func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
