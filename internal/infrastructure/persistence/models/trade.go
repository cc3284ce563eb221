package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for purchase orders
type OrderModel struct {
	AggregateColumns
	SupplierID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Product     string            `gorm:"type:jsonb;not null;default:'{}'"`
	Date        time.Time         `gorm:"not null"`
	Description string            `gorm:"type:text"`
	Category    string            `gorm:"type:varchar(50);not null"`
	Price       decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Quantity    int               `gorm:"not null"`
	Status      trade.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Total       decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) ToDomain() (*trade.Order, error) {
	var product shared.Attributes
	if err := decodeJSON(m.Product, &product); err != nil {
		return nil, fmt.Errorf("order %s: decode product: %w", m.ID, err)
	}
	o := &trade.Order{
		Aggregate:   m.aggregate(),
		SupplierID:  m.SupplierID,
		Date:        m.Date,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Status:      m.Status,
		Total:       m.Total,
	}
	o.LoadProduct(product)
	return o, nil
}

func (m *OrderModel) FromDomain(o *trade.Order) error {
	m.AggregateColumns = columnsOf(o.Aggregate)
	raw, err := encodeJSON(o.Product(), "{}")
	if err != nil {
		return fmt.Errorf("order %s: encode product: %w", o.ID, err)
	}
	m.SupplierID = o.SupplierID
	m.Product = raw
	m.Date = o.Date.UTC()
	m.Description = o.Description
	m.Category = o.Category
	m.Price = o.Price
	m.Quantity = o.Quantity
	m.Status = o.Status
	m.Total = o.Total
	return nil
}

// SaleModel is the persistence model for sales. ProductID is denormalised
// from the product document so rankings can group on it.
type SaleModel struct {
	AggregateColumns
	ProductID   string          `gorm:"type:varchar(64);not null;index"`
	Product     string          `gorm:"type:jsonb;not null;default:'{}'"`
	Date        time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(50);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

func (SaleModel) TableName() string {
	return "sales"
}

func (m *SaleModel) ToDomain() (*trade.Sale, error) {
	var product shared.Attributes
	if err := decodeJSON(m.Product, &product); err != nil {
		return nil, fmt.Errorf("sale %s: decode product: %w", m.ID, err)
	}
	s := &trade.Sale{
		Aggregate:   m.aggregate(),
		Date:        m.Date,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Total:       m.Total,
	}
	s.LoadProduct(product)
	if s.ProductID == "" {
		s.ProductID = m.ProductID
	}
	return s, nil
}

func (m *SaleModel) FromDomain(s *trade.Sale) error {
	m.AggregateColumns = columnsOf(s.Aggregate)
	raw, err := encodeJSON(s.Product(), "{}")
	if err != nil {
		return fmt.Errorf("sale %s: encode product: %w", s.ID, err)
	}
	m.ProductID = s.ProductID
	m.Product = raw
	m.Date = s.Date.UTC()
	m.Description = s.Description
	m.Category = s.Category
	m.Price = s.Price
	m.Quantity = s.Quantity
	m.Total = s.Total
	return nil
}
