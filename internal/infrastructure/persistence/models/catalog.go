package models

import (
	"fmt"

	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel stores every product kind in one table; the kind-specific
// attributes live in the details document.
type ProductModel struct {
	AggregateColumns
	Kind     catalog.ProductKind `gorm:"type:varchar(20);not null;index"`
	Name     string              `gorm:"type:varchar(200);not null"`
	Category string              `gorm:"type:varchar(50);not null"`
	Price    decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Section  string              `gorm:"type:varchar(100)"`
	Stock    int                 `gorm:"not null;default:0"`
	Details  string              `gorm:"type:jsonb;not null;default:'{}'"`
}

func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the row to a Product
func (m *ProductModel) ToDomain() (*catalog.Product, error) {
	p := &catalog.Product{
		Aggregate: m.aggregate(),
		Kind:      m.Kind,
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price,
		Section:   m.Section,
		Stock:     m.Stock,
	}

	var err error
	switch m.Kind {
	case catalog.KindBook:
		p.Book = &catalog.BookDetails{}
		err = decodeJSON(m.Details, p.Book)
	case catalog.KindMagazine:
		p.Magazine = &catalog.MagazineDetails{}
		err = decodeJSON(m.Details, p.Magazine)
	case catalog.KindSchoolSupply:
		p.SchoolSupply = &catalog.SchoolSupplyDetails{}
		err = decodeJSON(m.Details, p.SchoolSupply)
	default:
		return nil, fmt.Errorf("product %s: unknown kind %q", m.ID, m.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("product %s: decode details: %w", m.ID, err)
	}
	return p, nil
}

// FromDomain populates the row from a Product
func (m *ProductModel) FromDomain(p *catalog.Product) error {
	m.AggregateColumns = columnsOf(p.Aggregate)
	m.Kind = p.Kind
	m.Name = p.Name
	m.Category = p.Category
	m.Price = p.Price
	m.Section = p.Section
	m.Stock = p.Stock

	var details any
	switch p.Kind {
	case catalog.KindBook:
		details = p.Book
	case catalog.KindMagazine:
		details = p.Magazine
	case catalog.KindSchoolSupply:
		details = p.SchoolSupply
	}
	raw, err := encodeJSON(details, "{}")
	if err != nil {
		return fmt.Errorf("product %s: encode details: %w", p.ID, err)
	}
	m.Details = raw
	return nil
}
