package request

type PromoValidateRequest struct {
	PromoCode string `json:"promoCode" binding:"required"`
	PackageID string `json:"packageId" binding:"required"`
}
