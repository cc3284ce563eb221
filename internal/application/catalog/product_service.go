package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProductService handles books, magazines and school supplies. Every method
// takes the product kind; a product of another kind is reported as missing.
type ProductService struct {
	productRepo    catalog.ProductRepository
	locker         cache.KeyedLocker
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, locker cache.KeyedLocker) *ProductService {
	if locker == nil {
		locker = cache.NewMemoryKeyedLocker()
	}
	return &ProductService{
		productRepo: productRepo,
		locker:      locker,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create validates and stores a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create", attribute.String("kind", kind.String()))
	defer span.End()

	product, err := req.build(tenantID, kind, nil)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.publish(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.find(ctx, tenantID, kind, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products of one kind with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize("name", "asc")
	domainFilter.Where("section", filter.Section)
	if filter.InStock != nil {
		domainFilter.Where("in_stock", *filter.InStock)
	}

	products, err := s.productRepo.FindByKind(ctx, tenantID, kind, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountByKind(ctx, tenantID, kind, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update merges the request over the stored product, validates the result
// and stores it. The stored product is untouched when validation fails.
func (s *ProductService) Update(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update", attribute.String(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	product, err := s.find(ctx, tenantID, kind, id)
	if err != nil {
		return nil, err
	}
	candidate, err := req.build(tenantID, kind, product)
	if err != nil {
		return nil, err
	}
	if err := product.Revise(candidate); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.publish(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies the request's signed quantity to the product's stock
func (s *ProductService) AdjustStock(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, id uuid.UUID, req StockRequest) (*ProductResponse, error) {
	delta, err := catalog.ParseStockDelta(req.Quantity)
	if err != nil {
		return nil, err
	}
	return s.adjust(ctx, tenantID, &kind, id, delta, req.Reason)
}

// AdjustStockByID applies a delta without checking the product kind. The
// inventory event handlers use it.
func (s *ProductService) AdjustStockByID(ctx context.Context, tenantID, id uuid.UUID, delta int, reason string) (*ProductResponse, error) {
	return s.adjust(ctx, tenantID, nil, id, delta, reason)
}

func (s *ProductService) adjust(ctx context.Context, tenantID uuid.UUID, kind *catalog.ProductKind, id uuid.UUID, delta int, reason string) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "adjust_stock",
		attribute.String(telemetry.SpanAttrProductID, id.String()),
		attribute.Int(telemetry.SpanAttrQuantity, delta),
	)
	defer span.End()

	unlock, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var product *catalog.Product
	if kind != nil {
		product, err = s.find(ctx, tenantID, *kind, id)
	} else {
		product, err = s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	}
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(delta, reason); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.publish(ctx, product)

	logger.L(ctx).Debug("stock adjusted",
		zap.String("product_id", id.String()),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	product, err := s.find(ctx, tenantID, kind, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	product.MarkDeleted()
	s.publish(ctx, product)
	return nil
}

func (s *ProductService) find(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product.Kind != kind {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, product.PendingEvents()...); err != nil {
		logger.L(ctx).Warn("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
	product.ClearEvents()
}

func lockKey(id uuid.UUID) string {
	return "product:" + id.String()
}
