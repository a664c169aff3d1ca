package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a mutation. Events are
// written to the outbox in the same transaction as the aggregate itself.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that raise domain events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}

// BaseEvent carries the envelope fields shared by every domain event.
type BaseEvent struct {
	ID        UUID      `json:"event_id"`
	Aggregate UUID      `json:"aggregate_id"`
	At        time.Time `json:"occurred_at"`
}

func NewBaseEvent(aggregateID UUID, at time.Time) BaseEvent {
	return BaseEvent{ID: NewUUID(), Aggregate: aggregateID, At: at}
}

func (e BaseEvent) EventID() UUID         { return e.ID }
func (e BaseEvent) AggregateID() UUID     { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.At }
