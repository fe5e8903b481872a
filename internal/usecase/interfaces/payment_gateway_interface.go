package interfaces

import (
	"context"
	"net/http"

	"amat_hosting/internal/domain/entities"
)

// IPaymentGateway abstracts one payment provider: opening a deposit,
// authenticating its callbacks and polling its status.
type IPaymentGateway interface {
	Method() entities.PaymentMethod
	Provider() entities.PaymentProvider
	CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error)
	VerifyCallback(header http.Header, body []byte) (entities.PaymentNotification, error)
	CheckStatus(ctx context.Context, order entities.Order) (entities.DepositStatusSnapshot, error)
}
