package shared

import (
	"time"

	"github.com/google/uuid"
)

// Aggregate carries the identity, tenant, timestamps and optimistic version
// shared by every stored record, plus the events recorded since the last
// publish.
type Aggregate struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int

	pending []DomainEvent
}

// NewAggregate starts a record at version 1 with a fresh time-ordered id
func NewAggregate(tenantID uuid.UUID) Aggregate {
	now := time.Now()
	return Aggregate{
		ID:        NewID(),
		TenantID:  tenantID,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// NewID returns a time-ordered identifier (UUIDv7).
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// MarkModified bumps the version and the update time
func (a *Aggregate) MarkModified() {
	a.UpdatedAt = time.Now()
	a.Version++
}

// Record queues ev until the aggregate has been saved
func (a *Aggregate) Record(ev DomainEvent) {
	a.pending = append(a.pending, ev)
}

func (a *Aggregate) PendingEvents() []DomainEvent {
	return a.pending
}

func (a *Aggregate) ClearEvents() {
	a.pending = nil
}
