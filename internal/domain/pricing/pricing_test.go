package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"amat_hosting/internal/domain/entities"
)

func ptrInt64(v int64) *int64 { return &v }

func TestValidatePromo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	t.Run("nil promo", func(t *testing.T) {
		if _, err := ValidatePromo(nil, 500, now); !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		p := &entities.PromoCode{Code: "OFF", DiscountType: entities.DiscountTypeFixed, DiscountValue: 10}
		if _, err := ValidatePromo(p, 500, now); !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		p := &entities.PromoCode{Code: "OLD", DiscountType: entities.DiscountTypeFixed, DiscountValue: 10, IsActive: true, EndDate: &yesterday}
		if _, err := ValidatePromo(p, 500, now); !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("not started", func(t *testing.T) {
		p := &entities.PromoCode{Code: "SOON", DiscountType: entities.DiscountTypeFixed, DiscountValue: 10, IsActive: true, StartDate: &tomorrow}
		if _, err := ValidatePromo(p, 500, now); !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		p := &entities.PromoCode{Code: "MAX", DiscountType: entities.DiscountTypeFixed, DiscountValue: 10, IsActive: true, UsageLimit: ptrInt64(3), CurrentUsage: 3}
		if _, err := ValidatePromo(p, 500, now); !errors.Is(err, ErrPromoExhausted) {
			t.Fatalf("expected ErrPromoExhausted, got %v", err)
		}
	})

	t.Run("percentage", func(t *testing.T) {
		p := &entities.PromoCode{Code: "TEN", DiscountType: entities.DiscountTypePercentage, DiscountValue: 10, IsActive: true, StartDate: &yesterday, EndDate: &tomorrow, UsageLimit: ptrInt64(3), CurrentUsage: 2}
		d, err := ValidatePromo(p, 60000, now)
		if err != nil || d != 6000 {
			t.Fatalf("expected 6000, got %d err=%v", d, err)
		}
	})
}

func TestDiscount_Clamped(t *testing.T) {
	cases := []struct {
		name  string
		promo entities.PromoCode
		base  int64
		want  int64
	}{
		{"fixed above base", entities.PromoCode{DiscountType: entities.DiscountTypeFixed, DiscountValue: 1000}, 500, 500},
		{"percentage above 100", entities.PromoCode{DiscountType: entities.DiscountTypePercentage, DiscountValue: 150}, 500, 500},
		{"negative fixed", entities.PromoCode{DiscountType: entities.DiscountTypeFixed, DiscountValue: -20}, 500, 0},
		{"unknown type", entities.PromoCode{DiscountType: "bogus", DiscountValue: 20}, 500, 0},
		{"rounded half up", entities.PromoCode{DiscountType: entities.DiscountTypePercentage, DiscountValue: 12.5}, 500, 63},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Discount(c.promo, c.base); got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
			if got := Discount(c.promo, c.base); got < 0 || got > c.base {
				t.Fatalf("discount %d outside [0,%d]", got, c.base)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Run("bot-sentinel with 10 percent tax", func(t *testing.T) {
		q, err := Reconcile(500, 0, 10, decimal.NewFromInt(550))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Total != 550 || q.PriceAfterDiscount != 500 {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		if _, err := Reconcile(60000, 6000, 11, decimal.NewFromInt(59941)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("tampered total", func(t *testing.T) {
		q, err := Reconcile(500, 0, 10, decimal.NewFromInt(1))
		if !errors.Is(err, ErrPriceMismatch) {
			t.Fatalf("expected ErrPriceMismatch, got %v", err)
		}
		if q.Total != 550 {
			t.Fatalf("expected authoritative 550, got %d", q.Total)
		}
	})

	t.Run("discount larger than base", func(t *testing.T) {
		q, err := Reconcile(500, 900, 10, decimal.NewFromInt(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Discount != 500 || q.Total != 0 {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})

	t.Run("invalid tax", func(t *testing.T) {
		if _, err := Reconcile(500, 0, 101, decimal.NewFromInt(1005)); !errors.Is(err, ErrInvalidTax) {
			t.Fatalf("expected ErrInvalidTax, got %v", err)
		}
		if _, err := Reconcile(500, 0, -1, decimal.NewFromInt(495)); !errors.Is(err, ErrInvalidTax) {
			t.Fatalf("expected ErrInvalidTax, got %v", err)
		}
	})

	t.Run("gap measured against the unrounded total", func(t *testing.T) {
		// 500 + 11% = 555 exactly; rounding 556.4 down to 556 first would hide the 1.4 gap.
		q, err := Reconcile(500, 0, 11, decimal.RequireFromString("556.4"))
		if !errors.Is(err, ErrPriceMismatch) {
			t.Fatalf("expected ErrPriceMismatch, got %v", err)
		}
		if q.Total != 555 {
			t.Fatalf("expected authoritative 555, got %d", q.Total)
		}
		if _, err := Reconcile(500, 0, 11, decimal.RequireFromString("556")); err != nil {
			t.Fatalf("gap of exactly 1 should pass, got %v", err)
		}
		if _, err := Reconcile(505, 0, 10, decimal.RequireFromString("554.4")); !errors.Is(err, ErrPriceMismatch) {
			t.Fatalf("expected ErrPriceMismatch below a fractional total, got %v", err)
		}
	})

	t.Run("rounds half up", func(t *testing.T) {
		q, err := Reconcile(505, 0, 10, decimal.NewFromInt(556))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Total != 556 {
			t.Fatalf("expected 556, got %d", q.Total)
		}
	})
}
