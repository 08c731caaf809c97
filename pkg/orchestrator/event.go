package orchestrator

import "fmt"

// EventType tags a server-sent event frame.
type EventType string

const (
	EventMessage EventType = "message"
	EventError   EventType = "error"
)

// Event is one SSE frame of the answer stream.
type Event struct {
	Type EventType
	Data string
}

// Format renders the wire framing for one event.
func (e Event) Format() string {
	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Type, e.Data)
}

// Sink receives events in order. A non-nil error means the consumer is
// gone and the producer must stop.
type Sink func(Event) error
