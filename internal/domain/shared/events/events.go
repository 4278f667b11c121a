package events

import "time"

// DomainEvent is a fact an aggregate raised. The name doubles as the outbox
// record name and, with a version suffix, as the CloudEvent type.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that raise events during a command.
// The zero value is ready to use.
type EventRecorder struct {
	pending []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	if event != nil {
		r.pending = append(r.pending, event)
	}
}

func (r *EventRecorder) PendingEvents() []DomainEvent {
	return append([]DomainEvent(nil), r.pending...)
}

func (r *EventRecorder) ClearEvents() { r.pending = nil }

// Take returns the pending events in the order they were raised and empties
// the buffer.
func (r *EventRecorder) Take() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}
