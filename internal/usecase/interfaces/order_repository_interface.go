package interfaces

import (
	"context"

	"amat_hosting/internal/domain/entities"
)

// ConfirmOutcome is the result of ConfirmPayment.
type ConfirmOutcome string

const (
	// ConfirmApplied: the order is now paid and the promo usage (if any) was counted.
	ConfirmApplied ConfirmOutcome = "applied"
	// ConfirmStale: the order was no longer in the expected status. Nothing was written.
	ConfirmStale ConfirmOutcome = "stale"
	// ConfirmPromoExhausted: the promo hit its usage limit. Nothing was written.
	ConfirmPromoExhausted ConfirmOutcome = "promo_exhausted"
)

// IOrderRepository is the order store. Every status change is conditional on
// the current status so concurrent writers cannot move an order twice.
//
// Lookups return a zero Order (empty OrderID) when nothing matches.
type IOrderRepository interface {
	// Create stores the order and its deposit reference index atomically.
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	GetByDepositRef(ctx context.Context, depositRef string) (entities.Order, error)
	// Transition moves the order from -> to and applies patch. applied is false
	// when the stored status was not from.
	Transition(ctx context.Context, orderID string, from, to entities.OrderStatus, patch entities.OrderPatch) (o entities.Order, applied bool, err error)
	// ConfirmPayment moves the order from -> paid and, when promoCode is set,
	// increments its usage in the same atomic write.
	ConfirmPayment(ctx context.Context, orderID string, from entities.OrderStatus, depositStatus, promoCode string) (entities.Order, ConfirmOutcome, error)
	// UpdateDepositStatus mirrors the advisory provider status without touching Status.
	UpdateDepositStatus(ctx context.Context, orderID, depositStatus string) error
}
