// Package manager implements the process lifecycle manager: start, stop and
// status for the collector slots, persisted through PID files. The manager
// is invoked once per CLI run; the collectors it spawns outlive it.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/otelops/otelctl/internal/collector"
	"github.com/otelops/otelctl/internal/journal"
	"github.com/otelops/otelctl/internal/process"
	"github.com/otelops/otelctl/internal/settings"
)

// ErrProjectRequired is returned by StartGCP when no project id could be
// resolved from the argument or the environment.
var ErrProjectRequired = errors.New(
	"gcp project id required: pass it as an argument or set OTLP_GOOGLE_CLOUD_PROJECT")

// Fetcher resolves a logical script name to a local executable path,
// downloading it when necessary.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// Options configures a Manager.
type Options struct {
	Paths   collector.Paths
	Fetcher Fetcher
	Journal journal.Sink // optional lifecycle event sink
	WorkDir string       // the invoking user's project directory
	Logger  *slog.Logger // defaults to slog.Default()
}

// Manager tracks the two collector slots.
type Manager struct {
	paths   collector.Paths
	fetcher Fetcher
	journal journal.Sink
	workDir string
	log     *slog.Logger

	// Per-slot locks serialize the read-check-spawn-write sequence inside
	// one manager instance. Separate manager processes still race, as the
	// PID files are the only cross-process state.
	locks map[collector.Slot]*sync.Mutex
}

// New creates a Manager. Options.Fetcher is required for Start operations.
func New(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	locks := make(map[collector.Slot]*sync.Mutex, len(collector.Slots()))
	for _, s := range collector.Slots() {
		locks[s] = &sync.Mutex{}
	}
	return &Manager{
		paths:   opts.Paths,
		fetcher: opts.Fetcher,
		journal: opts.Journal,
		workDir: opts.WorkDir,
		log:     log,
		locks:   locks,
	}
}

// IsRunning reports whether the slot has a live collector. Not pure: a PID
// file pointing at a dead or unparseable process is deleted as a side
// effect, so a later call starts from a clean state.
func (m *Manager) IsRunning(slot collector.Slot) bool {
	mu := m.locks[slot]
	mu.Lock()
	defer mu.Unlock()
	running, _ := m.liveness(slot)
	return running
}

// liveness is IsRunning without locking; callers hold the slot lock.
// Returns the live pid alongside.
func (m *Manager) liveness(slot collector.Slot) (bool, int) {
	path := m.paths.PIDFile(slot)
	pid, err := process.ReadPIDFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			// Unparseable content is stale state; self-heal like a dead pid.
			m.log.Debug("removing unreadable pid file", "slot", slot, "error", err)
			process.RemovePIDFile(path)
		}
		return false, 0
	}
	if !process.Alive(pid) {
		m.log.Debug("removing stale pid file", "slot", slot, "pid", pid)
		process.RemovePIDFile(path)
		return false, 0
	}
	return true, pid
}

// StartGCP launches the GCP collector for the given project. The project
// id must already be resolved (argument or environment) by the caller;
// an empty one is a fatal input error and mutates nothing.
func (m *Manager) StartGCP(ctx context.Context, project string) error {
	if project == "" {
		return ErrProjectRequired
	}
	tel := settings.Telemetry{Enabled: true, Target: string(collector.GCP), Project: project}
	env := []string{"OTLP_GOOGLE_CLOUD_PROJECT=" + project}
	return m.start(ctx, collector.GCP, tel, env)
}

// StartLocal launches the local collector. outfile is optional.
func (m *Manager) StartLocal(ctx context.Context, outfile string) error {
	tel := settings.Telemetry{Enabled: true, Target: string(collector.Local), Outfile: outfile}
	var env []string
	if outfile != "" {
		env = []string{"OTLP_OUTFILE=" + outfile}
	}
	return m.start(ctx, collector.Local, tel, env)
}

func (m *Manager) start(ctx context.Context, slot collector.Slot, tel settings.Telemetry, extraEnv []string) error {
	mu := m.locks[slot]
	mu.Lock()
	defer mu.Unlock()

	if running, pid := m.liveness(slot); running {
		m.log.Info("collector already running", "slot", slot, "pid", pid)
		return nil
	}

	// Settings failures degrade to a warning: the collector is still
	// worth starting even if the workspace file could not be updated.
	if err := settings.Apply(settings.WorkspaceFile(m.workDir), tel); err != nil {
		m.log.Warn("could not update workspace settings", "slot", slot, "error", err)
	}

	scriptPath, err := m.fetcher.Fetch(ctx, slot.ScriptName())
	if err != nil {
		return fmt.Errorf("fetch %s collector script: %w", slot, err)
	}

	logPath := m.paths.LogFile(slot)
	pid, err := process.SpawnDetached(process.SpawnSpec{
		Path:    scriptPath,
		Env:     extraEnv,
		WorkDir: m.workDir,
		LogPath: logPath,
	})
	if err != nil {
		return fmt.Errorf("start %s collector: %w", slot, err)
	}
	if err := process.WritePIDFile(m.paths.PIDFile(slot), pid); err != nil {
		return fmt.Errorf("record %s collector pid %d: %w", slot, pid, err)
	}

	m.record(ctx, journal.EventStart, slot, pid)
	m.log.Info("collector started", "slot", slot, "pid", pid, "log", logPath)
	return nil
}

// StopResult describes the outcome of stopping one slot.
type StopResult struct {
	Slot      collector.Slot `json:"slot"`
	PID       int            `json:"pid"`
	Delivered bool           `json:"delivered"` // signal reached the process
}

// Stop terminates every running collector. The termination signal is a
// graceful shutdown request aimed at the whole process group, falling back
// to the single pid; there is no confirmation and no forced-kill
// escalation. PID files are removed on every path. An empty result means
// nothing was running, which is informational, not an error.
func (m *Manager) Stop(ctx context.Context) []StopResult {
	var results []StopResult
	for _, slot := range collector.Slots() {
		mu := m.locks[slot]
		mu.Lock()
		running, pid := m.liveness(slot)
		if !running {
			mu.Unlock()
			continue
		}
		res := StopResult{Slot: slot, PID: pid}
		if err := process.Terminate(pid); err != nil {
			if process.IsGone(err) {
				m.log.Info("collector was not found running", "slot", slot, "pid", pid)
			} else {
				m.log.Warn("terminate failed", "slot", slot, "pid", pid, "error", err)
			}
		} else {
			res.Delivered = true
			m.log.Info("collector stopped", "slot", slot, "pid", pid)
		}
		process.RemovePIDFile(m.paths.PIDFile(slot))
		m.record(ctx, journal.EventStop, slot, pid)
		mu.Unlock()
		results = append(results, res)
	}
	return results
}

// SlotStatus is one slot's line in a status report.
type SlotStatus struct {
	Slot      collector.Slot `json:"slot"`
	Running   bool           `json:"running"`
	PID       int            `json:"pid,omitempty"`
	LogFile   string         `json:"log_file,omitempty"`
	StartedAt time.Time      `json:"started_at,omitempty"`
}

// Status reports every slot. Observation only, aside from the stale PID
// cleanup inherited from the liveness check.
func (m *Manager) Status() []SlotStatus {
	out := make([]SlotStatus, 0, len(collector.Slots()))
	for _, slot := range collector.Slots() {
		mu := m.locks[slot]
		mu.Lock()
		running, pid := m.liveness(slot)
		mu.Unlock()
		st := SlotStatus{Slot: slot, Running: running}
		if running {
			st.PID = pid
			st.LogFile = m.paths.LogFile(slot)
			if unix := process.StartTime(pid); unix > 0 {
				st.StartedAt = time.Unix(unix, 0)
			}
		}
		out = append(out, st)
	}
	return out
}

func (m *Manager) record(ctx context.Context, typ journal.EventType, slot collector.Slot, pid int) {
	if m.journal == nil {
		return
	}
	e := journal.Event{Type: typ, Slot: string(slot), PID: pid, OccurredAt: time.Now()}
	if err := m.journal.Send(ctx, e); err != nil {
		m.log.Warn("journal write failed", "slot", slot, "event", typ, "error", err)
	}
}
