// Package collector defines the two well-known collector slots and the
// on-disk layout the lifecycle manager operates on. A slot is a named
// collector lifecycle: it owns one PID file and one log file, and at most
// one live process at any time.
package collector

import (
	"fmt"
	"os"
	"path/filepath"
)

// Slot identifies one of the tracked collector lifecycles.
type Slot string

const (
	// GCP exports telemetry to Google Cloud; requires a project id.
	GCP Slot = "gcp"
	// Local writes telemetry to a file on the local machine.
	Local Slot = "local"
)

// Slots lists all known slots in reporting order.
func Slots() []Slot { return []Slot{GCP, Local} }

// Valid reports whether s names a known slot.
func (s Slot) Valid() bool { return s == GCP || s == Local }

func (s Slot) String() string { return string(s) }

// ScriptName returns the logical name of the collector script for this slot,
// as published by the script origin.
func (s Slot) ScriptName() string { return string(s) + "-collector.sh" }

const (
	pidDirName    = "telemetry-pids"
	scriptDirName = "telemetry-scripts"
	journalName   = "journal.db"
)

// Paths resolves slot files under a fixed per-user state directory.
type Paths struct {
	StateDir string
}

// DefaultStateDir returns $HOME/.otelctl.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".otelctl"), nil
}

// PIDFile returns the slot's PID file path, e.g. telemetry-pids/gcp.pid.
func (p Paths) PIDFile(s Slot) string {
	return filepath.Join(p.StateDir, pidDirName, string(s)+".pid")
}

// LogFile returns the slot's collector log path,
// e.g. telemetry-pids/gcp-telemetry.log.
func (p Paths) LogFile(s Slot) string {
	return filepath.Join(p.StateDir, pidDirName, string(s)+"-telemetry.log")
}

// ScriptDir returns the cache directory for fetched collector scripts.
func (p Paths) ScriptDir() string {
	return filepath.Join(p.StateDir, scriptDirName)
}

// JournalDB returns the path of the lifecycle event journal database.
func (p Paths) JournalDB() string {
	return filepath.Join(p.StateDir, journalName)
}
