package entities

import "time"

type PaymentMethod string

const (
	PaymentMethodQRIS PaymentMethod = "QRISFAST"
	PaymentMethodSnap PaymentMethod = "SNAP"
)

type PaymentProvider string

const (
	PaymentProviderForestAPI PaymentProvider = "forestapi"
	PaymentProviderMidtrans  PaymentProvider = "midtrans"
)

// Deposit is what the client needs to complete the payment: a QR for QRIS or
// a snap token and redirect URL for the card gateway.
type Deposit struct {
	Method      PaymentMethod `json:"method"`
	QRImageURL  string        `json:"qrImageUrl,omitempty"`
	QRString    string        `json:"qrString,omitempty"`
	SnapToken   string        `json:"snapToken,omitempty"`
	RedirectURL string        `json:"redirectUrl,omitempty"`
	Nominal     int64         `json:"nominal"`
	Fee         int64         `json:"fee,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	ExpiredAt   *time.Time    `json:"expiredAt,omitempty"`
}

// PaymentIntentRequest carries what a gateway needs to open a payment.
type PaymentIntentRequest struct {
	OrderID      string
	ReffID       string
	Amount       int64
	CustomerName string
	PhoneNumber  string
	PackageID    string
	PackageName  string
}

// PaymentIntent is the gateway result. DepositRef is the provider-side identifier.
type PaymentIntent struct {
	DepositRef string
	Status     string
	Deposit    Deposit
}

// PaymentNotification is a verified provider callback. Provider A callbacks
// are joined by DepositRef, provider B callbacks by OrderID.
type PaymentNotification struct {
	Provider      PaymentProvider
	DepositRef    string
	OrderID       string
	ReffID        string
	Status        string
	FraudStatus   string
	Amount        int64
	TransactionID string
	Message       string
}

// DepositStatusSnapshot is an advisory upstream status read.
type DepositStatusSnapshot struct {
	DepositRef string    `json:"depositRef"`
	Status     string    `json:"status"`
	Nominal    int64     `json:"nominal"`
	Method     string    `json:"method"`
	CheckedAt  time.Time `json:"checkedAt"`
}
