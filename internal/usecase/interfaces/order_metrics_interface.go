package interfaces

import "time"

// IOrderMetrics records order flow counters.
type IOrderMetrics interface {
	ObserveCheckout(method, result string)
	ObserveNotification(provider, outcome string)
	ObserveTransition(to string)
	ObserveProvisioning(result string, elapsed time.Duration)
}
