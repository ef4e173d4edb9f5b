package process

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPIDFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "gcp.pid")
	if err := WritePIDFile(path, 4242); err != nil {
		t.Fatalf("WritePIDFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "4242" {
		t.Fatalf("pid file content %q, want bare decimal", string(b))
	}
	pid, err := ReadPIDFile(path)
	if err != nil {
		t.Fatalf("ReadPIDFile: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("pid = %d, want 4242", pid)
	}
}

func TestReadPIDFileMissing(t *testing.T) {
	_, err := ReadPIDFile(filepath.Join(t.TempDir(), "absent.pid"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected IsNotExist, got %v", err)
	}
}

func TestReadPIDFileTolerantOfWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.pid")
	if err := os.WriteFile(path, []byte(" 77\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	pid, err := ReadPIDFile(path)
	if err != nil || pid != 77 {
		t.Fatalf("got pid=%d err=%v, want 77", pid, err)
	}
}

func TestReadPIDFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"text.pid":     "not-a-pid",
		"negative.pid": "-5",
		"zero.pid":     "0",
		"empty.pid":    "",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := ReadPIDFile(path); err == nil {
			t.Fatalf("%s: expected error for content %q", name, content)
		}
	}
}

func TestRemovePIDFileIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.pid")
	if err := WritePIDFile(path, 1); err != nil {
		t.Fatalf("WritePIDFile: %v", err)
	}
	RemovePIDFile(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("pid file still present")
	}
	// second removal is a no-op
	RemovePIDFile(path)
}
