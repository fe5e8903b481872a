package response

import "amat_hosting/internal/usecase"

type PromoValidateResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DiscountType  string `json:"discountType"`
	DiscountValue int64  `json:"discountValue"`
	Code          string `json:"code"`
}

func FromPromoQuote(q usecase.PromoQuote) PromoValidateResponse {
	return PromoValidateResponse{
		Success:       true,
		Message:       "Promo code applied.",
		DiscountType:  string(q.DiscountType),
		DiscountValue: q.DiscountValue,
		Code:          q.Code,
	}
}
