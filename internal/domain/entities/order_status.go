package entities

import "strings"

// OrderStatus is the order lifecycle. Statuses only move forward along
// orderTransitions; active and every failed* status are terminal.
type OrderStatus string

const (
	OrderStatusAwaitingPayment                  OrderStatus = "awaiting_payment"
	OrderStatusPending                          OrderStatus = "pending"
	OrderStatusChallenge                        OrderStatus = "challenge"
	OrderStatusPaid                             OrderStatus = "paid"
	OrderStatusProvisioning                     OrderStatus = "provisioning"
	OrderStatusActive                           OrderStatus = "active"
	OrderStatusFailed                           OrderStatus = "failed"
	OrderStatusFailedInvalidPackage             OrderStatus = "failed_invalid_package"
	OrderStatusFailedServerCreationExternalAPI  OrderStatus = "failed_server_creation_external_api"
	OrderStatusFailedServerCreationAPICallError OrderStatus = "failed_server_creation_api_call_error"
	OrderStatusFailedPromoExhausted             OrderStatus = "failed_promo_exhausted"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAwaitingPayment: {
		OrderStatusPending, OrderStatusChallenge, OrderStatusPaid, OrderStatusFailed, OrderStatusFailedPromoExhausted,
	},
	OrderStatusPending: {
		OrderStatusChallenge, OrderStatusPaid, OrderStatusFailed, OrderStatusFailedPromoExhausted,
	},
	OrderStatusChallenge: {
		OrderStatusPaid, OrderStatusFailed, OrderStatusFailedPromoExhausted,
	},
	OrderStatusPaid: {
		OrderStatusProvisioning, OrderStatusFailedInvalidPackage,
	},
	OrderStatusProvisioning: {
		OrderStatusActive,
		OrderStatusFailedInvalidPackage,
		OrderStatusFailedServerCreationExternalAPI,
		OrderStatusFailedServerCreationAPICallError,
	},
}

// CanTransition reports whether from -> to is a legal forward move.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsFailed() bool {
	return strings.HasPrefix(string(s), string(OrderStatusFailed))
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusActive || s.IsFailed()
}

// AcceptsPaymentUpdates is false once payment is confirmed; later provider
// notifications for the order are no-ops.
func (s OrderStatus) AcceptsPaymentUpdates() bool {
	switch s {
	case OrderStatusAwaitingPayment, OrderStatusPending, OrderStatusChallenge:
		return true
	}
	return false
}

func (s OrderStatus) Known() bool {
	if s == OrderStatusActive {
		return true
	}
	if _, ok := orderTransitions[s]; ok {
		return true
	}
	switch s {
	case OrderStatusFailed, OrderStatusFailedInvalidPackage, OrderStatusFailedServerCreationExternalAPI,
		OrderStatusFailedServerCreationAPICallError, OrderStatusFailedPromoExhausted:
		return true
	}
	return false
}

// MapProviderStatus maps a provider payment status and fraud verdict onto an
// order status. ok is false for statuses that must not move the order.
func MapProviderStatus(status, fraudStatus string) (OrderStatus, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fraudStatus = strings.ToLower(strings.TrimSpace(fraudStatus))

	switch status {
	case "success", "settlement", "capture":
		switch fraudStatus {
		case "", "accept":
			return OrderStatusPaid, true
		case "challenge":
			return OrderStatusChallenge, true
		case "deny":
			return OrderStatusFailed, true
		}
		return "", false
	case "pending":
		return OrderStatusPending, true
	case "expired", "expire", "failed", "cancelled", "cancel", "deny":
		return OrderStatusFailed, true
	}
	return "", false
}
