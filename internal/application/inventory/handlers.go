// Package inventory keeps product stock in step with sales and deliveries.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// StockAdjuster applies a stock delta to a catalog product
type StockAdjuster interface {
	AdjustStockByID(ctx context.Context, tenantID, id uuid.UUID, delta int, reason string) (*catalogapp.ProductResponse, error)
}

// SaleRecordedHandler deducts the sold quantity from the product's stock.
// Sales of items that are not catalog products are ignored.
type SaleRecordedHandler struct {
	stock  StockAdjuster
	logger *zap.Logger
}

// NewSaleRecordedHandler creates a new handler for sale recorded events
func NewSaleRecordedHandler(stock StockAdjuster, logger *zap.Logger) *SaleRecordedHandler {
	return &SaleRecordedHandler{stock: stock, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleRecordedHandler) EventTypes() []string {
	return []string{trade.EventTypeSaleRecorded}
}

// Handle processes a SaleRecordedEvent
func (h *SaleRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*trade.SaleRecordedEvent)
	if !ok {
		return unexpectedEvent(h.logger, trade.EventTypeSaleRecorded, event)
	}

	reason := fmt.Sprintf("sale %s", recorded.SaleID)
	return adjust(ctx, h.logger, h.stock, event.TenantID(), recorded.ProductID, -recorded.Quantity, reason)
}

// OrderDeliveredHandler adds an order's quantity to the product's stock when
// the order becomes DELIVERED.
type OrderDeliveredHandler struct {
	stock  StockAdjuster
	logger *zap.Logger
}

// NewOrderDeliveredHandler creates a new handler for order status events
func NewOrderDeliveredHandler(stock StockAdjuster, logger *zap.Logger) *OrderDeliveredHandler {
	return &OrderDeliveredHandler{stock: stock, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderDeliveredHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderStatusChanged}
}

// Handle processes an OrderStatusChangedEvent
func (h *OrderDeliveredHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*trade.OrderStatusChangedEvent)
	if !ok {
		return unexpectedEvent(h.logger, trade.EventTypeOrderStatusChanged, event)
	}
	if changed.To != trade.OrderStatusDelivered {
		return nil
	}

	reason := fmt.Sprintf("order %s delivered", changed.OrderID)
	return adjust(ctx, h.logger, h.stock, event.TenantID(), changed.ProductID, changed.Quantity, reason)
}

func adjust(ctx context.Context, base *zap.Logger, stock StockAdjuster, tenantID uuid.UUID, productRef string, delta int, reason string) error {
	log := logger.Enrich(ctx, base).With(
		zap.String("product_ref", productRef),
		zap.Int("delta", delta),
	)

	productID, err := uuid.Parse(productRef)
	if err != nil {
		log.Debug("product reference is not a catalog id, stock untouched")
		return nil
	}

	resp, err := stock.AdjustStockByID(ctx, tenantID, productID, delta, reason)
	if errors.Is(err, shared.ErrNotFound) {
		log.Info("product not in catalog, stock untouched")
		return nil
	}
	if err != nil {
		log.Error("failed to adjust stock", zap.String("reason", reason), zap.Error(err))
		return err
	}

	log.Info("stock adjusted", zap.String("reason", reason), zap.Int("stock", resp.Stock))
	return nil
}

func unexpectedEvent(log *zap.Logger, expected string, event shared.DomainEvent) error {
	log.Error("unexpected event type",
		zap.String("expected", expected),
		zap.String("actual", event.EventType()),
	)
	return fmt.Errorf("unexpected event type: expected %s, got %s", expected, event.EventType())
}

var (
	_ shared.EventHandler = (*SaleRecordedHandler)(nil)
	_ shared.EventHandler = (*OrderDeliveredHandler)(nil)
)
