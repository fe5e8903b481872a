package response

import "amat_hosting/internal/usecase"

type WebhookResponse struct {
	Success     bool   `json:"success"`
	Outcome     string `json:"outcome"`
	OrderID     string `json:"orderId,omitempty"`
	OrderStatus string `json:"orderStatus,omitempty"`
}

func FromNotificationResult(r usecase.NotificationResult) WebhookResponse {
	return WebhookResponse{
		Success:     true,
		Outcome:     string(r.Outcome),
		OrderID:     r.OrderID,
		OrderStatus: string(r.Status),
	}
}
