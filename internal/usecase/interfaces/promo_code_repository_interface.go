package interfaces

import (
	"context"

	"amat_hosting/internal/domain/entities"
)

// IPromoCodeRepository reads promo codes. GetByCode returns a zero PromoCode
// when the code does not exist.
type IPromoCodeRepository interface {
	GetByCode(ctx context.Context, code string) (entities.PromoCode, error)
}
