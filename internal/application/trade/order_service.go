package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrSupplierNotFound is returned when an order names an unknown supplier
var ErrSupplierNotFound = shared.NewDomainError(shared.CodeNotFound, "Supplier not found")

// OrderService handles supplier orders
type OrderService struct {
	orderRepo      trade.OrderRepository
	supplierRepo   partner.SupplierRepository
	locker         cache.KeyedLocker
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, supplierRepo partner.SupplierRepository, locker cache.KeyedLocker) *OrderService {
	if locker == nil {
		locker = cache.NewMemoryKeyedLocker()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		locker:       locker,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create validates and stores a new order. The supplier must exist.
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req OrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create")
	defer span.End()

	in, err := req.input(nil)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if in.Status, err = trade.ParseOrderStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	order, err := trade.NewOrder(tenantID, in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSupplier(ctx, tenantID, order.SupplierID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize("date", "desc")
	if filter.Status != "" {
		status, err := trade.ParseOrderStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Where("status", string(status))
	}
	domainFilter.Where("supplier_id", filter.SupplierID)
	domainFilter.Where("category", filter.Category)

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// Update merges the request over the stored order. A status in the request
// goes through the same rules as UpdateStatus.
func (s *OrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req OrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update", attribute.String(telemetry.SpanAttrOrderID, id.String()))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, orderLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	in, err := req.input(order)
	if err != nil {
		return nil, err
	}
	candidate, err := trade.NewOrder(tenantID, in)
	if err != nil {
		return nil, err
	}
	var next trade.OrderStatus
	if req.Status != nil {
		if next, err = trade.ParseOrderStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if candidate.SupplierID != order.SupplierID {
		if err := s.ensureSupplier(ctx, tenantID, candidate.SupplierID); err != nil {
			return nil, err
		}
	}

	if next != "" && next != order.Status {
		if err := order.UpdateStatus(next); err != nil {
			return nil, err
		}
	}
	order.Revise(candidate)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, req OrderStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		attribute.String(telemetry.SpanAttrOrderID, id.String()),
		attribute.String(telemetry.SpanAttrStatus, req.Status),
	)
	defer span.End()

	next, err := trade.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, orderLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(next); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, orderLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	order.MarkDeleted()
	s.publish(ctx, order)
	return nil
}

func (s *OrderService) ensureSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	exists, err := s.supplierRepo.ExistsByID(ctx, tenantID, supplierID)
	if err != nil {
		return fmt.Errorf("check supplier: %w", err)
	}
	if !exists {
		return ErrSupplierNotFound
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, order.PendingEvents()...); err != nil {
		logger.L(ctx).Warn("failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
	order.ClearEvents()
}

func orderLockKey(id uuid.UUID) string {
	return "order:" + id.String()
}
