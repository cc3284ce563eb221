package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/report"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SaleService handles completed sales and the top-products ranking
type SaleService struct {
	saleRepo       trade.SaleRepository
	locker         cache.KeyedLocker
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository, locker cache.KeyedLocker) *SaleService {
	if locker == nil {
		locker = cache.NewMemoryKeyedLocker()
	}
	return &SaleService{
		saleRepo: saleRepo,
		locker:   locker,
		now:      time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock replaces the clock used for ranking windows
func (s *SaleService) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates and stores a new sale
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, req SaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create")
	defer span.End()

	in, err := req.input(nil)
	if err != nil {
		return nil, err
	}
	sale, err := trade.NewSale(tenantID, in)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save sale: %w", err)
	}
	s.publish(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize("date", "desc")
	domainFilter.Where("product_id", filter.ProductID)
	domainFilter.Where("category", filter.Category)

	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(sales), total, nil
}

// Update merges the request over the stored sale. Stock is not re-adjusted.
func (s *SaleService) Update(ctx context.Context, tenantID, id uuid.UUID, req SaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "update", attribute.String(telemetry.SpanAttrSaleID, id.String()))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, saleLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	in, err := req.input(sale)
	if err != nil {
		return nil, err
	}
	candidate, err := trade.NewSale(tenantID, in)
	if err != nil {
		return nil, err
	}
	sale.Revise(candidate)

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save sale: %w", err)
	}
	s.publish(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a sale
func (s *SaleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, saleLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.saleRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	sale.MarkDeleted()
	s.publish(ctx, sale)
	return nil
}

// TopProducts ranks products by units sold within the named range ending now.
// Unknown range names fall back to the last week.
func (s *SaleService) TopProducts(ctx context.Context, tenantID uuid.UUID, query TopProductsQuery) ([]report.ProductQuantity, error) {
	r := report.ParseRange(query.Range)
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "top_products", attribute.String(telemetry.SpanAttrRange, string(r)))
	defer span.End()

	now := s.now()
	sales, err := s.saleRepo.FindBetween(ctx, tenantID, r.From(now), now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load sales: %w", err)
	}

	lines := make([]report.SaleLine, len(sales))
	for i := range sales {
		lines[i] = report.SaleLine{
			ProductID: sales[i].ProductID,
			Quantity:  sales[i].Quantity,
			Date:      sales[i].Date,
		}
	}
	return report.TopSellingProducts(lines, r, now), nil
}

func (s *SaleService) publish(ctx context.Context, sale *trade.Sale) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, sale.PendingEvents()...); err != nil {
		logger.L(ctx).Warn("failed to publish sale events",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err),
		)
	}
	sale.ClearEvents()
}

func saleLockKey(id uuid.UUID) string {
	return "sale:" + id.String()
}
