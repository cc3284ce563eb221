package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate and published after save
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
}

// EventMeta is embedded by every concrete event and implements DomainEvent.
type EventMeta struct {
	ID        uuid.UUID    `json:"id"`
	Type      string       `json:"type"`
	At        time.Time    `json:"occurredAt"`
	Aggregate AggregateRef `json:"aggregate"`
	Tenant    uuid.UUID    `json:"tenantId"`
}

// AggregateRef names the record an event belongs to
type AggregateRef struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

// NewEventMeta stamps an event of eventType for the aggregate
func NewEventMeta(eventType, aggregateType string, aggregateID, tenantID uuid.UUID) EventMeta {
	return EventMeta{
		ID:        NewID(),
		Type:      eventType,
		At:        time.Now(),
		Aggregate: AggregateRef{Type: aggregateType, ID: aggregateID},
		Tenant:    tenantID,
	}
}

func (m EventMeta) EventID() uuid.UUID     { return m.ID }
func (m EventMeta) EventType() string      { return m.Type }
func (m EventMeta) OccurredAt() time.Time  { return m.At }
func (m EventMeta) AggregateID() uuid.UUID { return m.Aggregate.ID }
func (m EventMeta) AggregateType() string  { return m.Aggregate.Type }
func (m EventMeta) TenantID() uuid.UUID    { return m.Tenant }

// EventHandler reacts to published events. An empty EventTypes subscribes
// to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher delivers events to the subscribed handlers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus routes published events to handlers by type. Explicit event
// types passed to Subscribe take precedence over the handler's own.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
