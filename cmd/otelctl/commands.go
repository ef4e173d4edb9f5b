package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	otelctl "github.com/otelops/otelctl"
)

// command binds the CLI verbs to a lazily constructed manager.
type command struct {
	global *GlobalFlags
}

// newManager loads config, installs logging, and builds the manager.
// The returned cleanup closes the diagnostic log and the journal.
func (c *command) newManager() (*otelctl.Manager, func(), error) {
	cfg, err := otelctl.LoadConfig(c.global.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	_, logCloser, err := cfg.Log.Setup()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := otelctl.New(cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = mgr.Close()
		_ = logCloser.Close()
	}
	return mgr, cleanup, nil
}

// resolveProject picks the project id from the positional argument, falling
// back to the environment.
func resolveProject(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return os.Getenv(projectEnvVar)
}

func (c *command) StartGCP(ctx context.Context, out io.Writer, args []string) error {
	mgr, cleanup, err := c.newManager()
	if err != nil {
		return err
	}
	defer cleanup()
	if err := mgr.StartGCP(ctx, resolveProject(args)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "gcp collector running")
	return nil
}

func (c *command) StartLocal(ctx context.Context, out io.Writer, args []string) error {
	mgr, cleanup, err := c.newManager()
	if err != nil {
		return err
	}
	defer cleanup()
	var outfile string
	if len(args) > 0 {
		outfile = args[0]
	}
	if err := mgr.StartLocal(ctx, outfile); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "local collector running")
	return nil
}

func (c *command) Stop(ctx context.Context, out io.Writer) error {
	mgr, cleanup, err := c.newManager()
	if err != nil {
		return err
	}
	defer cleanup()
	results := mgr.Stop(ctx)
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "no telemetry collectors were running")
		return nil
	}
	for _, r := range results {
		if r.Delivered {
			_, _ = fmt.Fprintf(out, "stopped %s collector (pid %d)\n", r.Slot, r.PID)
		} else {
			_, _ = fmt.Fprintf(out, "%s collector (pid %d) was not running; cleaned up\n", r.Slot, r.PID)
		}
	}
	return nil
}

func (c *command) Status(out io.Writer) error {
	mgr, cleanup, err := c.newManager()
	if err != nil {
		return err
	}
	defer cleanup()
	for _, st := range mgr.Status() {
		if !st.Running {
			_, _ = fmt.Fprintf(out, "%-6s stopped\n", st.Slot)
			continue
		}
		line := fmt.Sprintf("%-6s running  pid %-8d log %s", st.Slot, st.PID, st.LogFile)
		if !st.StartedAt.IsZero() {
			line += fmt.Sprintf("  up %s", time.Since(st.StartedAt).Round(time.Second))
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}
