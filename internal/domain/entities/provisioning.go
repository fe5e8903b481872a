package entities

import "fmt"

type ProvisioningErrorKind string

const (
	// ProvisioningRejected: the panel answered and reported failure.
	ProvisioningRejected ProvisioningErrorKind = "rejected"
	// ProvisioningCallFailed: transport error, timeout or non-2xx answer.
	ProvisioningCallFailed ProvisioningErrorKind = "call_failed"
	// ProvisioningMalformed: the panel answered with a body we could not read.
	ProvisioningMalformed ProvisioningErrorKind = "malformed"
)

// ProvisioningError is the typed failure returned by provisioners.
type ProvisioningError struct {
	Kind    ProvisioningErrorKind
	Message string
	Err     error
}

func (e *ProvisioningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provisioning %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("provisioning %s: %s", e.Kind, e.Message)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// FailureStatus is the terminal order status for this failure.
func (e *ProvisioningError) FailureStatus() OrderStatus {
	if e.Kind == ProvisioningRejected {
		return OrderStatusFailedServerCreationExternalAPI
	}
	return OrderStatusFailedServerCreationAPICallError
}
