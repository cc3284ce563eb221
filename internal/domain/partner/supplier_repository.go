package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

// SupplierRepository persists suppliers together with their catalog
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindByCategory compares categories case-insensitively
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category string) ([]Supplier, error)
	ExistsByID(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

	Save(ctx context.Context, supplier *Supplier) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
