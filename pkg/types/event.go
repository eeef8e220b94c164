package types

import "time"

// Event is the per-file detail record emitted by the engine, one per
// terminal file outcome. It is the only channel through which per-file
// information leaves the engine.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	RunID       string    `json:"run_id"`
	Outcome     Outcome   `json:"outcome"`
	Source      string    `json:"source"`
	Destination string    `json:"destination,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Category    string    `json:"category,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// EventSink consumes engine events. Implementations must tolerate
// concurrent calls; the engine serializes emission through its
// aggregator, but sinks may also be shared with a watch loop.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(Event)

// Emit calls the wrapped function.
func (f EventSinkFunc) Emit(e Event) { f(e) }

// DiscardEvents is a sink that drops everything.
var DiscardEvents = EventSinkFunc(func(Event) {})
