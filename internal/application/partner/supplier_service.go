package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo   partner.SupplierRepository
	locker         cache.KeyedLocker
	eventPublisher shared.EventPublisher
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, locker cache.KeyedLocker) *SupplierService {
	if locker == nil {
		locker = cache.NewMemoryKeyedLocker()
	}
	return &SupplierService{
		supplierRepo: supplierRepo,
		locker:       locker,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SupplierService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new supplier, optionally with an initial catalog
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supplier", "create")
	defer span.End()

	supplier, err := partner.NewSupplier(tenantID, req.input(nil))
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save supplier: %w", err)
	}
	s.publish(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize("name", "asc")
	domainFilter.Where("category", filter.Category)

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

// ByCategory returns every supplier in a category, ignoring case
func (s *SupplierService) ByCategory(ctx context.Context, tenantID uuid.UUID, category string) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindByCategory(ctx, tenantID, category)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponses(suppliers), nil
}

// Update merges the request over the stored supplier's contact data
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supplier", "update", attribute.String(telemetry.SpanAttrSupplierID, id.String()))
	defer span.End()

	return s.mutate(ctx, tenantID, id, func(supplier *partner.Supplier) error {
		candidate, err := partner.NewSupplier(tenantID, req.input(supplier))
		if err != nil {
			return err
		}
		supplier.Revise(candidate)
		return nil
	})
}

// AddCatalogItem appends an entry to the supplier's catalog
func (s *SupplierService) AddCatalogItem(ctx context.Context, tenantID, id uuid.UUID, item shared.Attributes) (*SupplierResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supplier", "add_catalog_item", attribute.String(telemetry.SpanAttrSupplierID, id.String()))
	defer span.End()

	return s.mutate(ctx, tenantID, id, func(supplier *partner.Supplier) error {
		return supplier.AddToCatalog(item)
	})
}

// RemoveCatalogItem removes the catalog entry with the given id
func (s *SupplierService) RemoveCatalogItem(ctx context.Context, tenantID, id uuid.UUID, itemID string) (*SupplierResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supplier", "remove_catalog_item", attribute.String(telemetry.SpanAttrSupplierID, id.String()))
	defer span.End()

	return s.mutate(ctx, tenantID, id, func(supplier *partner.Supplier) error {
		return supplier.RemoveFromCatalog(itemID)
	})
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, supplierLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.supplierRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	supplier.MarkDeleted()
	s.publish(ctx, supplier)
	return nil
}

// mutate loads the supplier under its lock, applies fn and saves the result
func (s *SupplierService) mutate(ctx context.Context, tenantID, id uuid.UUID, fn func(*partner.Supplier) error) (*SupplierResponse, error) {
	unlock, err := s.locker.Lock(ctx, supplierLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(supplier); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, fmt.Errorf("save supplier: %w", err)
	}
	s.publish(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

func (s *SupplierService) publish(ctx context.Context, supplier *partner.Supplier) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, supplier.PendingEvents()...); err != nil {
		logger.L(ctx).Warn("failed to publish supplier events",
			zap.String("supplier_id", supplier.ID.String()),
			zap.Error(err),
		)
	}
	supplier.ClearEvents()
}

func supplierLockKey(id uuid.UUID) string {
	return "supplier:" + id.String()
}
