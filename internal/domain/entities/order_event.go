package entities

import "time"

type OrderEventType string

const (
	OrderEventActivated OrderEventType = "order.activated"
	OrderEventFailed    OrderEventType = "order.failed"
)

// OrderEvent announces that an order reached a terminal status.
type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	OrderID     string         `json:"orderId"`
	CustomerRef string         `json:"customerRef"`
	PackageID   string         `json:"packageId"`
	Status      OrderStatus    `json:"status"`
	TotalPrice  int64          `json:"totalPrice"`
	Error       string         `json:"error,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
}

// NewOrderEvent builds the terminal event for o.
func NewOrderEvent(o Order, at time.Time) OrderEvent {
	t := OrderEventFailed
	if o.Status == OrderStatusActive {
		t = OrderEventActivated
	}
	return OrderEvent{
		Type:        t,
		OrderID:     o.OrderID,
		CustomerRef: o.CustomerRef,
		PackageID:   o.PackageID,
		Status:      o.Status,
		TotalPrice:  o.TotalPrice,
		Error:       o.Error,
		OccurredAt:  at,
	}
}
