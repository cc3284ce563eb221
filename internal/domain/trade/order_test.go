package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderInput() OrderInput {
	return OrderInput{
		SupplierID:  uuid.New(),
		Product:     shared.Attributes{"id": "book-1", "name": "Rayuela"},
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "restock",
		Category:    "libro",
		Price:       decimal.NewFromFloat(12.5),
		Quantity:    4,
	}
}

func newTestOrder(t *testing.T, status OrderStatus) *Order {
	t.Helper()
	in := validOrderInput()
	in.Status = status
	o, err := NewOrder(uuid.New(), in)
	require.NoError(t, err)
	return o
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("SHIPPED").IsValid())
	assert.False(t, OrderStatus("pending").IsValid())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("delivered")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDelivered, s)

	_, err = ParseOrderStatus("shipped")
	require.Error(t, err)
	assert.Equal(t, "Invalid order status", err.Error())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusConfirmed, OrderStatusPending, true},
		{OrderStatusConfirmed, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusDelivered, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusPending, OrderStatus("LOST"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_UpdateStatusFollowsTransitionTable(t *testing.T) {
	all := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled}
	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				o := newTestOrder(t, from)
				err := o.UpdateStatus(to)
				if from.CanTransitionTo(to) {
					require.NoError(t, err)
					assert.Equal(t, to, o.Status)
					return
				}
				require.Error(t, err)
				assert.Equal(t, from, o.Status)
			})
		}
	}
}

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()

	t.Run("computes total and defaults status", func(t *testing.T) {
		in := validOrderInput()
		o, err := NewOrder(tenantID, in)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.True(t, decimal.NewFromInt(50).Equal(o.Total))
		assert.Equal(t, in.SupplierID, o.SupplierID)
		assert.Equal(t, "book-1", o.Product().ID())
		require.Len(t, o.PendingEvents(), 1)
		assert.Equal(t, EventTypeOrderCreated, o.PendingEvents()[0].EventType())
	})

	t.Run("copies product on write and read", func(t *testing.T) {
		in := validOrderInput()
		o, err := NewOrder(tenantID, in)
		require.NoError(t, err)

		in.Product["name"] = "changed by caller"
		assert.Equal(t, "Rayuela", o.Product()["name"])

		read := o.Product()
		read["name"] = "changed by reader"
		assert.Equal(t, "Rayuela", o.Product()["name"])
	})

	tests := []struct {
		name    string
		mutate  func(in *OrderInput)
		message string
	}{
		{"missing supplier", func(in *OrderInput) { in.SupplierID = uuid.Nil }, "Order must have all required properties"},
		{"missing product", func(in *OrderInput) { in.Product = nil }, "Order must have all required properties"},
		{"missing category", func(in *OrderInput) { in.Category = "" }, "Order must have all required properties"},
		{"zero date", func(in *OrderInput) { in.Date = time.Time{} }, "Date must be a valid Date object"},
		{"negative price", func(in *OrderInput) { in.Price = decimal.NewFromInt(-2) }, "Price must be a positive number"},
		{"zero quantity", func(in *OrderInput) { in.Quantity = 0 }, "Quantity must be a positive number"},
		{"unknown status", func(in *OrderInput) { in.Status = "SHIPPED" }, "Invalid order status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrderInput()
			tt.mutate(&in)
			o, err := NewOrder(tenantID, in)
			require.Error(t, err)
			assert.Nil(t, o)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestOrder_UpdateStatus(t *testing.T) {
	t.Run("cancelled is terminal", func(t *testing.T) {
		o := newTestOrder(t, OrderStatusPending)
		require.NoError(t, o.UpdateStatus(OrderStatusCancelled))
		for _, next := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
			err := o.UpdateStatus(next)
			require.Error(t, err)
			assert.Equal(t, "Cannot update status of a cancelled order", err.Error())
		}
		assert.Equal(t, OrderStatusCancelled, o.Status)
	})

	t.Run("delivered can only be cancelled", func(t *testing.T) {
		for _, next := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered} {
			o := newTestOrder(t, OrderStatusDelivered)
			err := o.UpdateStatus(next)
			require.Error(t, err)
			assert.Equal(t, "Delivered order can only be cancelled", err.Error())
			assert.Equal(t, OrderStatusDelivered, o.Status)
		}
		o := newTestOrder(t, OrderStatusDelivered)
		assert.NoError(t, o.UpdateStatus(OrderStatusCancelled))
	})

	t.Run("pending may jump straight to delivered", func(t *testing.T) {
		o := newTestOrder(t, OrderStatusPending)
		o.ClearEvents()
		require.NoError(t, o.UpdateStatus(OrderStatusDelivered))
		assert.Equal(t, 2, o.Version)

		events := o.PendingEvents()
		require.Len(t, events, 1)
		ev := events[0].(*OrderStatusChangedEvent)
		assert.Equal(t, OrderStatusPending, ev.From)
		assert.Equal(t, OrderStatusDelivered, ev.To)
		assert.Equal(t, "book-1", ev.ProductID)
		assert.Equal(t, 4, ev.Quantity)
	})

	t.Run("rejects unknown status before anything else", func(t *testing.T) {
		o := newTestOrder(t, OrderStatusCancelled)
		err := o.UpdateStatus("SHIPPED")
		require.Error(t, err)
		assert.Equal(t, "Invalid order status", err.Error())
	})
}

func TestOrder_Revise(t *testing.T) {
	o := newTestOrder(t, OrderStatusConfirmed)
	in := validOrderInput()
	in.Quantity = 10
	next, err := NewOrder(o.TenantID, in)
	require.NoError(t, err)

	id := o.ID
	o.Revise(next)
	assert.Equal(t, id, o.ID)
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	assert.True(t, decimal.NewFromInt(125).Equal(o.Total))
}
