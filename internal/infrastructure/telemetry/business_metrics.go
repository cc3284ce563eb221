package telemetry

import (
	"context"

	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
)

// BusinessMetrics counts domain events. It is subscribed to the event bus
// like any other handler.
type BusinessMetrics struct {
	metrics *Metrics
}

// NewBusinessMetrics creates the event handler
func NewBusinessMetrics(m *Metrics) *BusinessMetrics {
	return &BusinessMetrics{metrics: m}
}

// EventTypes implements shared.EventHandler
func (b *BusinessMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeSaleRecorded,
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderStatusChanged,
		catalog.EventTypeStockAdjusted,
	}
}

// Handle implements shared.EventHandler
func (b *BusinessMetrics) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.SaleRecordedEvent:
		b.metrics.salesRecorded.Inc()
		b.metrics.unitsSold.Add(float64(e.Quantity))
	case *trade.OrderCreatedEvent:
		b.metrics.ordersCreated.Inc()
	case *trade.OrderStatusChangedEvent:
		b.metrics.orderTransitions.WithLabelValues(e.To.String()).Inc()
	case *catalog.StockAdjustedEvent:
		direction := "in"
		if e.Delta < 0 {
			direction = "out"
		}
		b.metrics.stockAdjustments.WithLabelValues(direction).Inc()
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
