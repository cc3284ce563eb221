package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

// ProductRepository stores products of every kind in one table. Lookups by
// id return shared.ErrNotFound for ids outside the tenant.
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByKind(ctx context.Context, tenantID uuid.UUID, kind ProductKind, filter shared.Filter) ([]Product, error)
	CountByKind(ctx context.Context, tenantID uuid.UUID, kind ProductKind, filter shared.Filter) (int64, error)

	// Save inserts or updates by id
	Save(ctx context.Context, product *Product) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
