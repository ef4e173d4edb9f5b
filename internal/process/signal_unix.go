//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// Alive reports whether a process with the given pid exists. EPERM means
// the process exists but belongs to another user, which still counts.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Terminate requests graceful shutdown of the process group rooted at pid.
// Collectors spawn helper children (curl, exporters), so the group signal
// takes them down together. When the group signal fails, for example when
// pid is not a group leader, it falls back to signaling the single pid.
func Terminate(pid int) error {
	if pid <= 0 {
		return syscall.ESRCH
	}
	if err := syscall.Kill(-pid, syscall.SIGTERM); err == nil {
		return nil
	}
	return syscall.Kill(pid, syscall.SIGTERM)
}

// IsGone reports whether err from Terminate means the process no longer
// exists, i.e. stop raced with the process exiting on its own.
func IsGone(err error) bool {
	return errors.Is(err, syscall.ESRCH)
}
