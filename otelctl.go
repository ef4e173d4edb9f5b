// Package otelctl manages the lifecycle of externally supplied telemetry
// collector scripts: it fetches them over HTTP, launches them as detached
// processes tracked through PID files, and stops them on request. This
// package is the stable facade over the internal packages, usable both by
// the otelctl CLI and for embedding.
package otelctl

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/otelops/otelctl/internal/collector"
	"github.com/otelops/otelctl/internal/config"
	"github.com/otelops/otelctl/internal/fetcher"
	"github.com/otelops/otelctl/internal/journal"
	"github.com/otelops/otelctl/internal/manager"
)

// Re-export core types so consumers do not import internal packages.

type Slot = collector.Slot

const (
	GCP   Slot = collector.GCP
	Local Slot = collector.Local
)

type Config = config.Config

type SlotStatus = manager.SlotStatus

type StopResult = manager.StopResult

var ErrProjectRequired = manager.ErrProjectRequired

// LoadConfig reads the manager configuration; an empty path loads the
// default location with defaults for anything missing.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// Manager is the process lifecycle manager bound to a state directory.
type Manager struct {
	inner   *manager.Manager
	journal journal.Sink
}

// New builds a Manager from cfg. The working directory of the calling
// process becomes the collectors' working directory, so they can locate
// project-local configuration. A broken journal is degraded to a warning.
func New(cfg Config) (*Manager, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	paths := collector.Paths{StateDir: cfg.StateDir}

	var sink journal.Sink
	if cfg.Journal {
		if err := os.MkdirAll(cfg.StateDir, 0o750); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
		s, err := journal.OpenSQLite(paths.JournalDB())
		if err != nil {
			slog.Warn("lifecycle journal unavailable", "path", paths.JournalDB(), "error", err)
		} else {
			sink = s
		}
	}

	inner := manager.New(manager.Options{
		Paths:   paths,
		Fetcher: fetcher.New(cfg.ScriptBaseURL, paths.ScriptDir(), cfg.FetchTimeout),
		Journal: sink,
		WorkDir: workDir,
	})
	return &Manager{inner: inner, journal: sink}, nil
}

// StartGCP launches the GCP collector for the project id.
func (m *Manager) StartGCP(ctx context.Context, project string) error {
	return m.inner.StartGCP(ctx, project)
}

// StartLocal launches the local collector; outfile is optional.
func (m *Manager) StartLocal(ctx context.Context, outfile string) error {
	return m.inner.StartLocal(ctx, outfile)
}

// Stop terminates all running collectors. An empty result means nothing
// was running.
func (m *Manager) Stop(ctx context.Context) []StopResult { return m.inner.Stop(ctx) }

// Status reports every slot.
func (m *Manager) Status() []SlotStatus { return m.inner.Status() }

// IsRunning reports one slot's liveness.
func (m *Manager) IsRunning(slot Slot) bool { return m.inner.IsRunning(slot) }

// Close releases the journal, when one is open.
func (m *Manager) Close() error {
	if m.journal != nil {
		return m.journal.Close()
	}
	return nil
}
