package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a purchase order placed with a supplier
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus accepts the status name in any letter case
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewValidationError("Invalid order status")
	}
	return status, nil
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether UpdateStatus would accept target.
// CANCELLED is terminal and DELIVERED may only be cancelled; PENDING and
// CONFIRMED move freely between all states.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !target.IsValid() {
		return false
	}
	switch s {
	case OrderStatusCancelled:
		return false
	case OrderStatusDelivered:
		return target == OrderStatusCancelled
	}
	return true
}

// Order is a purchase of a product from a supplier
type Order struct {
	shared.Aggregate
	SupplierID  uuid.UUID
	Date        time.Time
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Status      OrderStatus
	Total       decimal.Decimal

	product shared.Attributes
}

// OrderInput holds the fields needed to place an order
type OrderInput struct {
	SupplierID  uuid.UUID
	Product     shared.Attributes
	Date        time.Time
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	// Status defaults to PENDING when empty
	Status OrderStatus
}

// NewOrder creates an order. The product attributes are copied.
func NewOrder(tenantID uuid.UUID, in OrderInput) (*Order, error) {
	if in.SupplierID == uuid.Nil || len(in.Product) == 0 || strings.TrimSpace(in.Category) == "" {
		return nil, shared.NewValidationError("Order must have all required properties")
	}
	if err := validateLine(in.Date, in.Price, in.Quantity); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = OrderStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid order status")
	}

	o := &Order{
		Aggregate:   shared.NewAggregate(tenantID),
		SupplierID:  in.SupplierID,
		Date:        in.Date,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Status:      status,
		Total:       lineTotal(in.Price, in.Quantity),
		product:     in.Product.Clone(),
	}
	o.Record(NewOrderCreatedEvent(o))
	return o, nil
}

// Product returns a copy of the ordered product's attributes
func (o *Order) Product() shared.Attributes {
	return o.product.Clone()
}

// LoadProduct sets the product attributes when rebuilding from storage
func (o *Order) LoadProduct(p shared.Attributes) {
	o.product = p.Clone()
}

// UpdateStatus moves the order to next, enforcing the cancellation rules
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !next.IsValid() {
		return shared.NewValidationError("Invalid order status")
	}
	if !o.Status.CanTransitionTo(next) {
		if o.Status == OrderStatusCancelled {
			return shared.NewValidationError("Cannot update status of a cancelled order")
		}
		return shared.NewValidationError("Delivered order can only be cancelled")
	}

	from := o.Status
	o.Status = next
	o.MarkModified()

	o.Record(NewOrderStatusChangedEvent(o, from, next))
	return nil
}

// Revise replaces the order's line data with that of next. Status is only
// changed through UpdateStatus, so next's status is ignored.
func (o *Order) Revise(next *Order) {
	o.SupplierID = next.SupplierID
	o.product = next.product.Clone()
	o.Date = next.Date
	o.Description = next.Description
	o.Category = next.Category
	o.Price = next.Price
	o.Quantity = next.Quantity
	o.Total = next.Total
	o.MarkModified()

	o.Record(NewOrderUpdatedEvent(o))
}

// MarkDeleted records the deletion event
func (o *Order) MarkDeleted() {
	o.Record(NewOrderDeletedEvent(o))
}

func validateLine(date time.Time, price decimal.Decimal, quantity int) error {
	if date.IsZero() {
		return shared.NewValidationError("Date must be a valid Date object")
	}
	if price.IsNegative() {
		return shared.NewValidationError("Price must be a positive number")
	}
	if quantity < 1 {
		return shared.NewValidationError("Quantity must be a positive number")
	}
	return nil
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
