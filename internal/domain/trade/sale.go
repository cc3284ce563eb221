package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is a completed sales transaction for one product line
type Sale struct {
	shared.Aggregate
	ProductID   string
	Date        time.Time
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Total       decimal.Decimal

	product shared.Attributes
}

// SaleInput holds the fields needed to record a sale
type SaleInput struct {
	Product     shared.Attributes
	Date        time.Time
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
}

// NewSale records a sale. The product attributes must carry an "id".
func NewSale(tenantID uuid.UUID, in SaleInput) (*Sale, error) {
	if in.Product == nil || strings.TrimSpace(in.Category) == "" {
		return nil, shared.NewValidationError("Sale must have all required properties")
	}
	productID := in.Product.ID()
	if strings.TrimSpace(productID) == "" {
		return nil, shared.NewValidationError("Product must have a valid ID")
	}
	if err := validateLine(in.Date, in.Price, in.Quantity); err != nil {
		return nil, err
	}

	s := &Sale{
		Aggregate:   shared.NewAggregate(tenantID),
		ProductID:   productID,
		Date:        in.Date,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Total:       lineTotal(in.Price, in.Quantity),
		product:     in.Product.Clone(),
	}
	s.Record(NewSaleRecordedEvent(s))
	return s, nil
}

// Product returns a copy of the sold product's attributes
func (s *Sale) Product() shared.Attributes {
	return s.product.Clone()
}

// LoadProduct sets the product attributes when rebuilding from storage
func (s *Sale) LoadProduct(p shared.Attributes) {
	s.product = p.Clone()
	s.ProductID = p.ID()
}

// Revise replaces the sale's data with that of next
func (s *Sale) Revise(next *Sale) {
	s.ProductID = next.ProductID
	s.product = next.product.Clone()
	s.Date = next.Date
	s.Description = next.Description
	s.Category = next.Category
	s.Price = next.Price
	s.Quantity = next.Quantity
	s.Total = next.Total
	s.MarkModified()

	s.Record(NewSaleUpdatedEvent(s))
}

// MarkDeleted records the deletion event
func (s *Sale) MarkDeleted() {
	s.Record(NewSaleDeletedEvent(s))
}
