package trade

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

type orderStatusContext struct {
	order *Order
	err   error
}

func (c *orderStatusContext) reset() {
	c.order = nil
	c.err = nil
}

func (c *orderStatusContext) anOrderInStatus(status string) error {
	o, err := NewOrder(uuid.New(), OrderInput{
		SupplierID: uuid.New(),
		Product:    shared.Attributes{"id": "p1"},
		Date:       time.Now(),
		Category:   "libro",
		Price:      decimal.NewFromInt(10),
		Quantity:   1,
		Status:     OrderStatus(status),
	})
	if err != nil {
		return err
	}
	c.order = o
	return nil
}

func (c *orderStatusContext) theOrderWasCancelled() error {
	return c.order.UpdateStatus(OrderStatusCancelled)
}

func (c *orderStatusContext) iChangeTheStatusTo(status string) error {
	c.err = c.order.UpdateStatus(OrderStatus(status))
	return nil
}

func (c *orderStatusContext) theChangeSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %q", c.err.Error())
	}
	return nil
}

func (c *orderStatusContext) theChangeFailsWith(message string) error {
	if c.err == nil {
		return fmt.Errorf("expected failure %q, got success", message)
	}
	if c.err.Error() != message {
		return fmt.Errorf("expected %q, got %q", message, c.err.Error())
	}
	return nil
}

func (c *orderStatusContext) theOrderStatusIs(status string) error {
	if string(c.order.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, c.order.Status)
	}
	return nil
}

func initializeOrderStatusScenario(ctx *godog.ScenarioContext) {
	tc := &orderStatusContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an order in status "([^"]*)"$`, tc.anOrderInStatus)
	ctx.Step(`^the order was cancelled$`, tc.theOrderWasCancelled)
	ctx.Step(`^I change the status to "([^"]*)"$`, tc.iChangeTheStatusTo)
	ctx.Step(`^the change succeeds$`, tc.theChangeSucceeds)
	ctx.Step(`^the change fails with "([^"]*)"$`, tc.theChangeFailsWith)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
}

func TestOrderStatusFeature(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeOrderStatusScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/order_status.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
