package partner

import (
	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

const AggregateTypeSupplier = "Supplier"

const (
	EventTypeSupplierCreated        = "SupplierCreated"
	EventTypeSupplierUpdated        = "SupplierUpdated"
	EventTypeSupplierCatalogChanged = "SupplierCatalogChanged"
	EventTypeSupplierDeleted        = "SupplierDeleted"
)

// CatalogChange tells whether an entry was added or removed
type CatalogChange string

const (
	CatalogItemAdded   CatalogChange = "added"
	CatalogItemRemoved CatalogChange = "removed"
)

// SupplierCreatedEvent is published when a new supplier is created
type SupplierCreatedEvent struct {
	shared.EventMeta
	SupplierID uuid.UUID `json:"supplierId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
}

func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		EventMeta:  shared.NewEventMeta(EventTypeSupplierCreated, AggregateTypeSupplier, s.ID, s.TenantID),
		SupplierID: s.ID,
		Name:       s.Name,
		Category:   s.Category,
	}
}

// SupplierUpdatedEvent is published when contact data changes
type SupplierUpdatedEvent struct {
	shared.EventMeta
	SupplierID  uuid.UUID `json:"supplierId"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Category    string    `json:"category"`
}

func NewSupplierUpdatedEvent(s *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		EventMeta:   shared.NewEventMeta(EventTypeSupplierUpdated, AggregateTypeSupplier, s.ID, s.TenantID),
		SupplierID:  s.ID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Category:    s.Category,
	}
}

// SupplierCatalogChangedEvent is published when a catalog entry is added or removed
type SupplierCatalogChangedEvent struct {
	shared.EventMeta
	SupplierID uuid.UUID     `json:"supplierId"`
	ItemID     string        `json:"itemId"`
	Change     CatalogChange `json:"change"`
}

func NewSupplierCatalogChangedEvent(s *Supplier, itemID string, change CatalogChange) *SupplierCatalogChangedEvent {
	return &SupplierCatalogChangedEvent{
		EventMeta:  shared.NewEventMeta(EventTypeSupplierCatalogChanged, AggregateTypeSupplier, s.ID, s.TenantID),
		SupplierID: s.ID,
		ItemID:     itemID,
		Change:     change,
	}
}

// SupplierDeletedEvent is published when a supplier is removed
type SupplierDeletedEvent struct {
	shared.EventMeta
	SupplierID uuid.UUID `json:"supplierId"`
}

func NewSupplierDeletedEvent(s *Supplier) *SupplierDeletedEvent {
	return &SupplierDeletedEvent{
		EventMeta:  shared.NewEventMeta(EventTypeSupplierDeleted, AggregateTypeSupplier, s.ID, s.TenantID),
		SupplierID: s.ID,
	}
}
