package catalog

import (
	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const AggregateTypeProduct = "Product"

const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
	EventTypeProductDeleted = "ProductDeleted"
	EventTypeStockAdjusted  = "StockAdjusted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.EventMeta
	ProductID uuid.UUID       `json:"productId"`
	Kind      ProductKind     `json:"kind"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		EventMeta: shared.NewEventMeta(EventTypeProductCreated, AggregateTypeProduct, p.ID, p.TenantID),
		ProductID: p.ID,
		Kind:      p.Kind,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
	}
}

// ProductUpdatedEvent is published when a product is revised
type ProductUpdatedEvent struct {
	shared.EventMeta
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		EventMeta: shared.NewEventMeta(EventTypeProductUpdated, AggregateTypeProduct, p.ID, p.TenantID),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
	}
}

// ProductDeletedEvent is published when a product is removed
type ProductDeletedEvent struct {
	shared.EventMeta
	ProductID uuid.UUID   `json:"productId"`
	Kind      ProductKind `json:"kind"`
}

func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		EventMeta: shared.NewEventMeta(EventTypeProductDeleted, AggregateTypeProduct, p.ID, p.TenantID),
		ProductID: p.ID,
		Kind:      p.Kind,
	}
}

// StockAdjustedEvent is published after every stock change
type StockAdjustedEvent struct {
	shared.EventMeta
	ProductID   uuid.UUID `json:"productId"`
	StockBefore int       `json:"stockBefore"`
	Delta       int       `json:"delta"`
	StockAfter  int       `json:"stockAfter"`
	Reason      string    `json:"reason,omitempty"`
}

func NewStockAdjustedEvent(p *Product, before, delta int, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		EventMeta:   shared.NewEventMeta(EventTypeStockAdjusted, AggregateTypeProduct, p.ID, p.TenantID),
		ProductID:   p.ID,
		StockBefore: before,
		Delta:       delta,
		StockAfter:  p.Stock,
		Reason:      reason,
	}
}
