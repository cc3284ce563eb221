package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindBetween returns every sale dated within [from, to]
	FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
