package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"amat_hosting/internal/domain/entities"
)

// PriceTolerance is the largest accepted gap, in currency units, between the
// client total and the exact server total.
var PriceTolerance = decimal.NewFromInt(1)

var (
	ErrPromoNotFound     = errors.New("promo code not found or inactive")
	ErrPromoExhausted    = errors.New("promo code usage limit reached")
	ErrPriceMismatch     = errors.New("price mismatch")
	ErrInvalidTax        = errors.New("tax percentage must be between 0 and 100")
	ErrInvalidBasePrice  = errors.New("base price must not be negative")
	ErrInvalidClientCost = errors.New("client total must not be negative")
)

var hundred = decimal.NewFromInt(100)

// ValidatePromo returns the discount promo grants on basePrice at now. A nil
// promo, an inactive one and one outside its window are all ErrPromoNotFound.
func ValidatePromo(promo *entities.PromoCode, basePrice int64, now time.Time) (int64, error) {
	if promo == nil || !promo.InWindow(now) {
		return 0, ErrPromoNotFound
	}
	if promo.Exhausted() {
		return 0, ErrPromoExhausted
	}
	return Discount(*promo, basePrice), nil
}

// Discount computes the promo discount clamped to [0, basePrice].
func Discount(promo entities.PromoCode, basePrice int64) int64 {
	base := decimal.NewFromInt(basePrice)
	value := decimal.NewFromFloat(promo.DiscountValue)

	var d decimal.Decimal
	switch promo.DiscountType {
	case entities.DiscountTypePercentage:
		d = base.Mul(value).Div(hundred)
	case entities.DiscountTypeFixed:
		d = value
	default:
		return 0
	}
	return clamp(d.Round(0).IntPart(), 0, basePrice)
}

// Quote is the server-computed price breakdown.
type Quote struct {
	BasePrice          int64
	Discount           int64
	PriceAfterDiscount int64
	TaxPercentage      decimal.Decimal
	Tax                decimal.Decimal
	Total              int64
}

// Reconcile recomputes the total from server-side values and rejects the
// client total when it differs from the exact, unrounded server total by more
// than PriceTolerance. Only the charged Total is rounded.
func Reconcile(basePrice, discount int64, taxPercentage float64, clientTotal decimal.Decimal) (Quote, error) {
	if basePrice < 0 {
		return Quote{}, ErrInvalidBasePrice
	}
	if clientTotal.IsNegative() {
		return Quote{}, ErrInvalidClientCost
	}
	taxPct := decimal.NewFromFloat(taxPercentage)
	if taxPct.IsNegative() || taxPct.GreaterThan(hundred) {
		return Quote{}, ErrInvalidTax
	}

	after := basePrice - clamp(discount, 0, basePrice)
	afterDec := decimal.NewFromInt(after)
	tax := afterDec.Mul(taxPct).Div(hundred)
	exact := afterDec.Add(tax)

	q := Quote{
		BasePrice:          basePrice,
		Discount:           basePrice - after,
		PriceAfterDiscount: after,
		TaxPercentage:      taxPct,
		Tax:                tax,
		Total:              exact.Round(0).IntPart(),
	}

	if exact.Sub(clientTotal).Abs().GreaterThan(PriceTolerance) {
		return q, fmt.Errorf("%w: expected %s, got %s", ErrPriceMismatch, exact.String(), clientTotal.String())
	}
	return q, nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
