// Package process is the OS capability layer of the lifecycle manager:
// PID file persistence, liveness probing, detached spawning and
// process-group termination. Platform differences live in build-tagged
// files; everything else is portable.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadPIDFile reads a PID file whose entire content is a decimal process id.
// A missing file is returned as-is (os.IsNotExist) so callers can treat it
// as "not running" without string matching.
func ReadPIDFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid in %s: %w", path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s: %d", path, pid)
	}
	return pid, nil
}

// WritePIDFile persists pid as the sole content of path, creating the
// parent directory when needed.
func WritePIDFile(path string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o600)
}

// RemovePIDFile removes path. Best-effort: a missing file is not an error.
func RemovePIDFile(path string) {
	_ = os.Remove(path)
}
