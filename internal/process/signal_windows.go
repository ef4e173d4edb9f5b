//go:build windows

package process

import (
	"errors"
	"syscall"
)

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procOpenProcess      = kernel32.NewProc("OpenProcess")
	procTerminateProcess = kernel32.NewProc("TerminateProcess")
	procCloseHandle      = kernel32.NewProc("CloseHandle")
)

const (
	processTerminate        = 0x0001
	processQueryInformation = 0x0400
)

var errProcessGone = errors.New("process not found")

// Alive reports whether a process with the given pid exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	h, err := openProcess(processQueryInformation, pid)
	if err != nil {
		return false
	}
	closeHandle(h)
	return true
}

// Terminate ends the process with the given pid. Windows has no process
// groups in the Unix sense and no SIGTERM; TerminateProcess is the closest
// equivalent of the graceful path.
func Terminate(pid int) error {
	if pid <= 0 {
		return errProcessGone
	}
	h, err := openProcess(processTerminate, pid)
	if err != nil {
		return errProcessGone
	}
	defer closeHandle(h)
	if ret, _, callErr := procTerminateProcess.Call(uintptr(h), uintptr(1)); ret == 0 {
		return callErr
	}
	return nil
}

// IsGone reports whether err from Terminate means the process had already
// exited.
func IsGone(err error) bool {
	return errors.Is(err, errProcessGone)
}

func openProcess(access uint32, pid int) (syscall.Handle, error) {
	ret, _, err := procOpenProcess.Call(uintptr(access), 0, uintptr(uint32(pid)))
	if ret == 0 {
		return 0, err
	}
	return syscall.Handle(ret), nil
}

func closeHandle(h syscall.Handle) {
	_, _, _ = procCloseHandle.Call(uintptr(h))
}
