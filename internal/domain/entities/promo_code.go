package entities

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode is a discount rule. CurrentUsage never exceeds UsageLimit; a nil
// UsageLimit means unlimited.
type PromoCode struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	IsActive      bool         `json:"isActive"`
	StartDate     *time.Time   `json:"startDate,omitempty"`
	EndDate       *time.Time   `json:"endDate,omitempty"`
	UsageLimit    *int64       `json:"usageLimit,omitempty"`
	CurrentUsage  int64        `json:"currentUsage"`
}

// InWindow reports whether the code is active at now.
func (p PromoCode) InWindow(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return false
	}
	return true
}

func (p PromoCode) Exhausted() bool {
	return p.UsageLimit != nil && p.CurrentUsage >= *p.UsageLimit
}
