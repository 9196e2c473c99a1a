package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/kakigori/storefront/internal/adapter/orderapi"
	"github.com/kakigori/storefront/internal/domain/model"
)

// NotifyingClient wraps an order client and publishes an OrderEvent after
// every successful create or advance. Publish failures are logged and never
// fail the call.
type NotifyingClient struct {
	orderapi.Client

	publisher Publisher
	prefix    string
	logger    *slog.Logger
	now       func() time.Time
}

// NewNotifyingClient decorates next.
func NewNotifyingClient(next orderapi.Client, publisher Publisher, prefix string, logger *slog.Logger) *NotifyingClient {
	return &NotifyingClient{
		Client:    next,
		publisher: publisher,
		prefix:    prefix,
		logger:    logger,
		now:       time.Now,
	}
}

func (c *NotifyingClient) CreateOrder(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error) {
	order, err := c.Client.CreateOrder(ctx, storeID, menuItemID, creds)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, storeID, KindCreated, order)
	return order, nil
}

func (c *NotifyingClient) AdvanceToWaitingPickup(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	order, err := c.Client.AdvanceToWaitingPickup(ctx, storeID, orderID, creds)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, storeID, KindAdvanced, order)
	return order, nil
}

func (c *NotifyingClient) AdvanceToComplete(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	order, err := c.Client.AdvanceToComplete(ctx, storeID, orderID, creds)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, storeID, KindAdvanced, order)
	return order, nil
}

func (c *NotifyingClient) publish(ctx context.Context, storeID, kind string, order *model.Order) {
	if order == nil {
		return
	}
	data, err := encode(OrderEvent{
		Kind:        kind,
		StoreID:     storeID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		OccurredAt:  c.now().UTC(),
	})
	if err != nil {
		c.logger.Error("order event not encoded", slog.String("error", err.Error()))
		return
	}
	subject := Subject(c.prefix, storeID, kind)
	if err := c.publisher.Publish(ctx, subject, data); err != nil {
		c.logger.Warn("order event not published",
			slog.String("subject", subject),
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

var _ orderapi.Client = (*NotifyingClient)(nil)
