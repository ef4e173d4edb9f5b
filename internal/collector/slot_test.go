package collector

import (
	"path/filepath"
	"testing"
)

func TestSlotValid(t *testing.T) {
	if !GCP.Valid() || !Local.Valid() {
		t.Fatalf("known slots must be valid")
	}
	if Slot("remote").Valid() {
		t.Fatalf("unknown slot reported valid")
	}
}

func TestScriptNames(t *testing.T) {
	if got := GCP.ScriptName(); got != "gcp-collector.sh" {
		t.Fatalf("gcp script name: %q", got)
	}
	if got := Local.ScriptName(); got != "local-collector.sh" {
		t.Fatalf("local script name: %q", got)
	}
}

func TestPathsLayout(t *testing.T) {
	p := Paths{StateDir: "/var/state"}
	if got := p.PIDFile(GCP); got != filepath.Join("/var/state", "telemetry-pids", "gcp.pid") {
		t.Fatalf("pid file: %q", got)
	}
	if got := p.LogFile(Local); got != filepath.Join("/var/state", "telemetry-pids", "local-telemetry.log") {
		t.Fatalf("log file: %q", got)
	}
	if got := p.ScriptDir(); got != filepath.Join("/var/state", "telemetry-scripts") {
		t.Fatalf("script dir: %q", got)
	}
}

func TestSlotsOrder(t *testing.T) {
	ss := Slots()
	if len(ss) != 2 || ss[0] != GCP || ss[1] != Local {
		t.Fatalf("unexpected slot order: %v", ss)
	}
}
