// Package journal records collector lifecycle events. The journal is an
// audit trail only: failures to record are reported by callers as warnings
// and never fail a start or stop.
package journal

import (
	"context"
	"time"
)

// EventType is the kind of lifecycle event.
type EventType string

const (
	EventStart EventType = "start"
	EventStop  EventType = "stop"
)

// Event is one recorded lifecycle transition of a collector slot.
type Event struct {
	Type       EventType `json:"type"`
	Slot       string    `json:"slot"`
	PID        int       `json:"pid"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink persists events. Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}
