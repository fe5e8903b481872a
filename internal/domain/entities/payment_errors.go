package entities

import "errors"

// Errors shared by payment gateways and the code that drives them.
var (
	ErrUpstreamGateway          = errors.New("payment gateway failure")
	ErrNotificationUnauthorized = errors.New("notification authenticity check failed")
	ErrMalformedNotification    = errors.New("malformed notification")
)
