package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
)

// SupplierRequest carries supplier fields. On update an absent field keeps
// the stored value; Catalog is only honoured on create.
type SupplierRequest struct {
	Name        *string             `json:"name" binding:"omitempty,max=200"`
	PhoneNumber *string             `json:"phoneNumber" binding:"omitempty,max=50"`
	Email       *string             `json:"email" binding:"omitempty,max=200"`
	Category    *string             `json:"category" binding:"omitempty,max=100"`
	Catalog     []shared.Attributes `json:"catalog"`
}

// SupplierListFilter holds list query parameters
type SupplierListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	PhoneNumber string              `json:"phoneNumber"`
	Email       string              `json:"email"`
	Category    string              `json:"category"`
	Catalog     []shared.Attributes `json:"catalog"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Version     int                 `json:"version"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Category:    s.Category,
		Catalog:     s.Catalog(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out
}

func (r SupplierRequest) input(base *partner.Supplier) partner.SupplierInput {
	var in partner.SupplierInput
	if base != nil {
		in = partner.SupplierInput{
			Name:        base.Name,
			PhoneNumber: base.PhoneNumber,
			Email:       base.Email,
			Category:    base.Category,
		}
	} else {
		in.Catalog = r.Catalog
	}
	if r.Name != nil {
		in.Name = *r.Name
	}
	if r.PhoneNumber != nil {
		in.PhoneNumber = *r.PhoneNumber
	}
	if r.Email != nil {
		in.Email = *r.Email
	}
	if r.Category != nil {
		in.Category = *r.Category
	}
	return in
}
