package models

import (
	"fmt"

	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
)

// SupplierModel is the persistence model for suppliers; the catalog is a
// JSON array of free-form entries.
type SupplierModel struct {
	AggregateColumns
	Name        string `gorm:"type:varchar(200);not null"`
	PhoneNumber string `gorm:"type:varchar(50);not null"`
	Email       string `gorm:"type:varchar(200);not null"`
	Category    string `gorm:"type:varchar(100);not null;index"`
	Catalog     string `gorm:"type:jsonb;not null;default:'[]'"`
}

func (SupplierModel) TableName() string {
	return "suppliers"
}

func (m *SupplierModel) ToDomain() (*partner.Supplier, error) {
	var items []shared.Attributes
	if err := decodeJSON(m.Catalog, &items); err != nil {
		return nil, fmt.Errorf("supplier %s: decode catalog: %w", m.ID, err)
	}
	s := &partner.Supplier{
		Aggregate:   m.aggregate(),
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		Category:    m.Category,
	}
	s.LoadCatalog(items)
	return s, nil
}

func (m *SupplierModel) FromDomain(s *partner.Supplier) error {
	m.AggregateColumns = columnsOf(s.Aggregate)
	raw, err := encodeJSON(s.Catalog(), "[]")
	if err != nil {
		return fmt.Errorf("supplier %s: encode catalog: %w", s.ID, err)
	}
	m.Name = s.Name
	m.PhoneNumber = s.PhoneNumber
	m.Email = s.Email
	m.Category = s.Category
	m.Catalog = raw
	return nil
}
