package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

// OrderEventPublisher publishes order lifecycle events keyed by order id, so
// events of one order land on one partition.
type OrderEventPublisher struct {
	client Client
}

var _ interfaces.IOrderEventPublisher = (*OrderEventPublisher)(nil)

func NewOrderEventPublisher(client Client) *OrderEventPublisher {
	return &OrderEventPublisher{client: client}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event entities.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, []byte(event.OrderID), value); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.client.Topic(), err)
	}
	return nil
}
