package request

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// CheckoutRequest is the storefront's price quote. Amounts may arrive as
// fractional numbers. The total is passed on as sent; the discount is rounded
// to whole currency units.
type CheckoutRequest struct {
	Username              string   `json:"username" binding:"required"`
	PhoneNumber           string   `json:"phoneNumber"`
	PackageID             string   `json:"packageId" binding:"required"`
	PackageName           string   `json:"packageName"`
	TotalPrice            float64  `json:"totalPrice" binding:"required"`
	TaxPercentage         *float64 `json:"taxPercentage" binding:"required"`
	AppliedDiscountAmount float64  `json:"appliedDiscountAmount"`
	AppliedPromoCode      string   `json:"appliedPromoCode"`
	PaymentMethod         string   `json:"paymentMethod"`
}

func (r CheckoutRequest) ResolvePaymentMethod() (entities.PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(r.PaymentMethod)) {
	case "", "QRIS", string(entities.PaymentMethodQRIS):
		return entities.PaymentMethodQRIS, nil
	case string(entities.PaymentMethodSnap), "MIDTRANS":
		return entities.PaymentMethodSnap, nil
	}
	return "", ErrUnknownPaymentMethod
}

func (r CheckoutRequest) ToInput() (usecase.CheckoutInput, error) {
	method, err := r.ResolvePaymentMethod()
	if err != nil {
		return usecase.CheckoutInput{}, err
	}
	var tax float64
	if r.TaxPercentage != nil {
		tax = *r.TaxPercentage
	}
	return usecase.CheckoutInput{
		Username:              strings.TrimSpace(r.Username),
		PhoneNumber:           strings.TrimSpace(r.PhoneNumber),
		PackageID:             strings.TrimSpace(r.PackageID),
		PackageName:           strings.TrimSpace(r.PackageName),
		TotalPrice:            decimal.NewFromFloat(r.TotalPrice),
		TaxPercentage:         tax,
		AppliedDiscountAmount: wholeUnits(r.AppliedDiscountAmount),
		AppliedPromoCode:      strings.TrimSpace(r.AppliedPromoCode),
		PaymentMethod:         method,
	}, nil
}

func wholeUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}
