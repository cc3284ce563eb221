package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPhoneDigits = 9

// Supplier is a vendor the store orders products from. It owns a catalog
// of the products it can supply; each entry is a free-form object with a
// unique "id".
type Supplier struct {
	shared.Aggregate
	Name        string
	PhoneNumber string
	Email       string
	Category    string

	catalog []shared.Attributes
}

// SupplierInput holds the fields needed to register a supplier
type SupplierInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Category    string
	Catalog     []shared.Attributes
}

// NewSupplier creates a supplier. Catalog entries go through the same
// checks as AddToCatalog.
func NewSupplier(tenantID uuid.UUID, in SupplierInput) (*Supplier, error) {
	if blank(in.Name) || blank(in.PhoneNumber) || blank(in.Email) || blank(in.Category) {
		return nil, shared.NewValidationError("Supplier must have all required properties")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePhone(in.PhoneNumber); err != nil {
		return nil, err
	}

	s := &Supplier{
		Aggregate:   shared.NewAggregate(tenantID),
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Email:       strings.TrimSpace(in.Email),
		Category:    strings.TrimSpace(in.Category),
		catalog:     make([]shared.Attributes, 0, len(in.Catalog)),
	}
	for _, item := range in.Catalog {
		if err := s.appendItem(item); err != nil {
			return nil, err
		}
	}

	s.Record(NewSupplierCreatedEvent(s))
	return s, nil
}

// Catalog returns a copy of the catalog entries
func (s *Supplier) Catalog() []shared.Attributes {
	out := make([]shared.Attributes, len(s.catalog))
	for i, item := range s.catalog {
		out[i] = item.Clone()
	}
	return out
}

// LoadCatalog sets the catalog when rebuilding from storage
func (s *Supplier) LoadCatalog(items []shared.Attributes) {
	s.catalog = make([]shared.Attributes, len(items))
	for i, item := range items {
		s.catalog[i] = item.Clone()
	}
}

// AddToCatalog appends a copy of item
func (s *Supplier) AddToCatalog(item shared.Attributes) error {
	if err := s.appendItem(item); err != nil {
		return err
	}
	s.MarkModified()
	s.Record(NewSupplierCatalogChangedEvent(s, item.ID(), CatalogItemAdded))
	return nil
}

// RemoveFromCatalog removes the entry with the given id
func (s *Supplier) RemoveFromCatalog(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return shared.NewValidationError("Item not found in catalog")
	}
	s.catalog = append(s.catalog[:idx], s.catalog[idx+1:]...)
	s.MarkModified()
	s.Record(NewSupplierCatalogChangedEvent(s, id, CatalogItemRemoved))
	return nil
}

// Revise replaces the contact data with that of next. The catalog is only
// edited through AddToCatalog and RemoveFromCatalog.
func (s *Supplier) Revise(next *Supplier) {
	s.Name = next.Name
	s.PhoneNumber = next.PhoneNumber
	s.Email = next.Email
	s.Category = next.Category
	s.MarkModified()

	s.Record(NewSupplierUpdatedEvent(s))
}

// MarkDeleted records the deletion event
func (s *Supplier) MarkDeleted() {
	s.Record(NewSupplierDeletedEvent(s))
}

func (s *Supplier) appendItem(item shared.Attributes) error {
	if item == nil || strings.TrimSpace(item.ID()) == "" {
		return shared.NewValidationError("Invalid catalog item")
	}
	for _, existing := range s.catalog {
		if existing.SameID(item) {
			return shared.NewValidationError("Item with this ID already exists in catalog")
		}
	}
	s.catalog = append(s.catalog, item.Clone())
	return nil
}

// indexOf finds the entry addressed by a textual id. An entry whose id is
// that exact string wins over a numeric id that prints the same.
func (s *Supplier) indexOf(id string) int {
	numeric := -1
	for i, item := range s.catalog {
		if raw, ok := item["id"].(string); ok {
			if raw == id {
				return i
			}
			continue
		}
		if numeric < 0 && item.ID() == id {
			numeric = i
		}
	}
	return numeric
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return shared.NewValidationError("Phone number must have at least 9 digits")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
