package process

import (
	"os"
	"testing"
	"time"
)

func TestStartTimeOfSelf(t *testing.T) {
	start := StartTime(os.Getpid())
	if start == 0 {
		t.Skip("process start time unavailable on this platform")
	}
	now := time.Now().Unix()
	if start > now {
		t.Fatalf("start time %d is in the future (now %d)", start, now)
	}
	// A test process started within the last day, allowing for clock skew.
	if now-start > 24*60*60 {
		t.Fatalf("start time %d implausibly old (now %d)", start, now)
	}
}

func TestStartTimeInvalidPID(t *testing.T) {
	if got := StartTime(0); got != 0 {
		t.Fatalf("StartTime(0) = %d, want 0", got)
	}
	if got := StartTime(-1); got != 0 {
		t.Fatalf("StartTime(-1) = %d, want 0", got)
	}
}
