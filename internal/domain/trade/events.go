package trade

import (
	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeOrder = "Order"
	AggregateTypeSale  = "Sale"
)

const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderUpdated       = "OrderUpdated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderDeleted       = "OrderDeleted"

	EventTypeSaleRecorded = "SaleRecorded"
	EventTypeSaleUpdated  = "SaleUpdated"
	EventTypeSaleDeleted  = "SaleDeleted"
)

// OrderCreatedEvent is published when an order is placed
type OrderCreatedEvent struct {
	shared.EventMeta
	OrderID    uuid.UUID       `json:"orderId"`
	SupplierID uuid.UUID       `json:"supplierId"`
	ProductID  string          `json:"productId,omitempty"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
}

func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		EventMeta:  shared.NewEventMeta(EventTypeOrderCreated, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:    o.ID,
		SupplierID: o.SupplierID,
		ProductID:  o.product.ID(),
		Quantity:   o.Quantity,
		Total:      o.Total,
		Status:     o.Status,
	}
}

// OrderUpdatedEvent is published when an order's line data is revised
type OrderUpdatedEvent struct {
	shared.EventMeta
	OrderID  uuid.UUID       `json:"orderId"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

func NewOrderUpdatedEvent(o *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		EventMeta: shared.NewEventMeta(EventTypeOrderUpdated, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:   o.ID,
		Quantity:  o.Quantity,
		Total:     o.Total,
	}
}

// OrderStatusChangedEvent is published on every accepted status change
type OrderStatusChangedEvent struct {
	shared.EventMeta
	OrderID   uuid.UUID   `json:"orderId"`
	ProductID string      `json:"productId,omitempty"`
	Quantity  int         `json:"quantity"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
}

func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		EventMeta: shared.NewEventMeta(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:   o.ID,
		ProductID: o.product.ID(),
		Quantity:  o.Quantity,
		From:      from,
		To:        to,
	}
}

// OrderDeletedEvent is published when an order is removed
type OrderDeletedEvent struct {
	shared.EventMeta
	OrderID uuid.UUID `json:"orderId"`
}

func NewOrderDeletedEvent(o *Order) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		EventMeta: shared.NewEventMeta(EventTypeOrderDeleted, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:   o.ID,
	}
}

// SaleRecordedEvent is published when a sale is recorded
type SaleRecordedEvent struct {
	shared.EventMeta
	SaleID    uuid.UUID       `json:"saleId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

func NewSaleRecordedEvent(s *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		EventMeta: shared.NewEventMeta(EventTypeSaleRecorded, AggregateTypeSale, s.ID, s.TenantID),
		SaleID:    s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Total:     s.Total,
	}
}

// SaleUpdatedEvent is published when a sale is revised
type SaleUpdatedEvent struct {
	shared.EventMeta
	SaleID    uuid.UUID `json:"saleId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func NewSaleUpdatedEvent(s *Sale) *SaleUpdatedEvent {
	return &SaleUpdatedEvent{
		EventMeta: shared.NewEventMeta(EventTypeSaleUpdated, AggregateTypeSale, s.ID, s.TenantID),
		SaleID:    s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
	}
}

// SaleDeletedEvent is published when a sale is removed
type SaleDeletedEvent struct {
	shared.EventMeta
	SaleID uuid.UUID `json:"saleId"`
}

func NewSaleDeletedEvent(s *Sale) *SaleDeletedEvent {
	return &SaleDeletedEvent{
		EventMeta: shared.NewEventMeta(EventTypeSaleDeleted, AggregateTypeSale, s.ID, s.TenantID),
		SaleID:    s.ID,
	}
}
