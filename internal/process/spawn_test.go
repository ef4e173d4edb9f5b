package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collector.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestSpawnDetachedWritesLogAndReportsPID(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "pids", "local-telemetry.log")
	script := writeScript(t, "echo collector-up\nsleep 5")

	pid, err := SpawnDetached(SpawnSpec{
		Path:    script,
		WorkDir: dir,
		LogPath: logPath,
	})
	if err != nil {
		t.Fatalf("SpawnDetached: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("invalid pid %d", pid)
	}
	t.Cleanup(func() { _ = Terminate(pid) })

	if !Alive(pid) {
		t.Fatalf("spawned process not alive")
	}
	ok := waitUntil(2*time.Second, 20*time.Millisecond, func() bool {
		b, err := os.ReadFile(logPath)
		return err == nil && strings.Contains(string(b), "collector-up")
	})
	if !ok {
		t.Fatalf("collector output did not reach log file")
	}
}

func TestSpawnDetachedAppendsToExistingLog(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "slot.log")
	if err := os.WriteFile(logPath, []byte("earlier-run\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	script := writeScript(t, "echo second-run")

	pid, err := SpawnDetached(SpawnSpec{Path: script, WorkDir: dir, LogPath: logPath})
	if err != nil {
		t.Fatalf("SpawnDetached: %v", err)
	}
	ok := waitUntil(2*time.Second, 20*time.Millisecond, func() bool {
		b, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		s := string(b)
		return strings.Contains(s, "earlier-run") && strings.Contains(s, "second-run")
	})
	if !ok {
		t.Fatalf("log was not appended, earlier content lost")
	}
	_ = Terminate(pid)
}

func TestSpawnDetachedPassesEnvAndWorkDir(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "slot.log")
	script := writeScript(t, "echo \"project=$OTLP_GOOGLE_CLOUD_PROJECT cwd=$(pwd)\"")

	pid, err := SpawnDetached(SpawnSpec{
		Path:    script,
		Env:     []string{"OTLP_GOOGLE_CLOUD_PROJECT=demo-project"},
		WorkDir: dir,
		LogPath: logPath,
	})
	if err != nil {
		t.Fatalf("SpawnDetached: %v", err)
	}
	ok := waitUntil(2*time.Second, 20*time.Millisecond, func() bool {
		b, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		return strings.Contains(string(b), "project=demo-project") &&
			strings.Contains(string(b), "cwd="+dir)
	})
	if !ok {
		b, _ := os.ReadFile(logPath)
		t.Fatalf("env/workdir not visible to child, log: %q", string(b))
	}
	_ = Terminate(pid)
}

func TestSpawnDetachedMissingExecutable(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	_, err := SpawnDetached(SpawnSpec{
		Path:    filepath.Join(dir, "no-such-script.sh"),
		WorkDir: dir,
		LogPath: filepath.Join(dir, "slot.log"),
	})
	if err == nil {
		t.Fatalf("expected error for missing executable")
	}
}

func TestSpawnDetachedReapsExitedCollector(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "slot.log")
	script := writeScript(t, "exit 0")

	pid, err := SpawnDetached(SpawnSpec{Path: script, WorkDir: dir, LogPath: logPath})
	if err != nil {
		t.Fatalf("SpawnDetached: %v", err)
	}
	// A zombie still answers signal 0, so this only settles once the
	// child has been waited on.
	ok := waitUntil(2*time.Second, 20*time.Millisecond, func() bool {
		return !Alive(pid)
	})
	if !ok {
		t.Fatalf("exited collector pid %d still reported alive", pid)
	}
}

func TestTerminateReachesScriptChildren(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "slot.log")
	// The script starts its own child; the group signal must reach both.
	script := writeScript(t, "sleep 30 &\nwait")

	pid, err := SpawnDetached(SpawnSpec{Path: script, WorkDir: dir, LogPath: logPath})
	if err != nil {
		t.Fatalf("SpawnDetached: %v", err)
	}
	if err := Terminate(pid); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	ok := waitUntil(2*time.Second, 20*time.Millisecond, func() bool {
		return !Alive(pid)
	})
	if !ok {
		t.Fatalf("session leader still alive after group terminate")
	}
}
