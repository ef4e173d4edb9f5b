package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// SpawnSpec describes a collector process to launch.
type SpawnSpec struct {
	Path    string   // executable script
	Args    []string // optional arguments
	Env     []string // extra KEY=VALUE entries appended to the inherited env
	WorkDir string   // working directory for the child
	LogPath string   // stdout and stderr, opened append-only
}

// SpawnDetached launches the described process in its own session, with
// stdout and stderr redirected to the log file and stdin discarded. It does
// not wait: the child's lifetime is independent of the caller's. The log
// file descriptor is inherited by the child; the parent's copy is closed
// before returning. Returns the child's pid.
func SpawnDetached(spec SpawnSpec) (int, error) {
	if err := os.MkdirAll(filepath.Dir(spec.LogPath), 0o750); err != nil {
		return 0, fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(spec.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// #nosec G204 -- the path comes from the script cache, not user input
	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.WorkDir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	// Stdin left nil so os/exec connects the child to the null device.
	// Stdout/Stderr must be a real *os.File: a pipe would need a copying
	// goroutine in the manager, which dies when the manager exits.
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spec.Path, err)
	}
	pid := cmd.Process.Pid
	// When the spawner exits (the one-shot CLI case) the child is
	// reparented to init, which reaps it. While the spawner lives
	// (embedded use), it must reap the child itself: signal-0 liveness
	// keeps succeeding on a zombie, so an unreaped collector would be
	// reported as running forever.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
