package usecase

import (
	"errors"
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/domain/pricing"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidPackage = errors.New("invalid package")

	ErrPriceMismatch  = pricing.ErrPriceMismatch
	ErrPromoNotFound  = pricing.ErrPromoNotFound
	ErrPromoExhausted = pricing.ErrPromoExhausted

	ErrUpstreamGateway          = entities.ErrUpstreamGateway
	ErrNotificationUnauthorized = entities.ErrNotificationUnauthorized
	ErrMalformedNotification    = entities.ErrMalformedNotification
)

type noopMetrics struct{}

func (noopMetrics) ObserveCheckout(string, string)            {}
func (noopMetrics) ObserveNotification(string, string)        {}
func (noopMetrics) ObserveTransition(string)                  {}
func (noopMetrics) ObserveProvisioning(string, time.Duration) {}
