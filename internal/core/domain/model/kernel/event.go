package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and relayed to other depots
// through the outbox.
type DomainEvent struct {
	id           UUID
	name         string
	aggregateKey string
	occurredAt   time.Time
	attributes   map[string]string
}

// NewDomainEvent creates an event with a fresh identifier.
func NewDomainEvent(name, aggregateKey string, occurredAt time.Time, attributes map[string]string) DomainEvent {
	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return DomainEvent{
		id:           NewUUID(),
		name:         name,
		aggregateKey: aggregateKey,
		occurredAt:   occurredAt.UTC(),
		attributes:   attrs,
	}
}

// RestoreDomainEvent rebuilds an event read back from the outbox.
func RestoreDomainEvent(id UUID, name, aggregateKey string, occurredAt time.Time, attributes map[string]string) DomainEvent {
	e := NewDomainEvent(name, aggregateKey, occurredAt, attributes)
	e.id = id
	return e
}

func (e DomainEvent) ID() UUID              { return e.id }
func (e DomainEvent) Name() string          { return e.name }
func (e DomainEvent) AggregateKey() string  { return e.aggregateKey }
func (e DomainEvent) OccurredAt() time.Time { return e.occurredAt }

// Attributes returns a copy of the event attributes.
func (e DomainEvent) Attributes() map[string]string {
	out := make(map[string]string, len(e.attributes))
	for k, v := range e.attributes {
		out[k] = v
	}
	return out
}

// EventRecorder is embedded by aggregates that publish domain events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) RecordEvent(e DomainEvent) {
	r.events = append(r.events, e)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}

// EventSource is an aggregate whose recorded events are collected on commit.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
