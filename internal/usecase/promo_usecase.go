package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/domain/pricing"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase/interfaces"
)

// PromoQuote is the advisory discount a promo grants on one package.
type PromoQuote struct {
	Code          string
	DiscountType  entities.DiscountType
	DiscountValue int64
}

type IPromoUseCase interface {
	Validate(ctx context.Context, code, packageID string) (PromoQuote, error)
}

// PromoUseCase answers promo lookups. It never writes: usage is only counted
// when an order that carries the code is paid.
type PromoUseCase struct {
	promos  interfaces.IPromoCodeRepository
	catalog *catalog.Catalog
	log     *zap.Logger
	now     func() time.Time
}

var _ IPromoUseCase = (*PromoUseCase)(nil)

func NewPromoUseCase(promos interfaces.IPromoCodeRepository, cat *catalog.Catalog, log *zap.Logger) *PromoUseCase {
	return &PromoUseCase{
		promos:  promos,
		catalog: cat,
		log:     logger.Named(log, "promo_usecase"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *PromoUseCase) Validate(ctx context.Context, code, packageID string) (PromoQuote, error) {
	code = strings.TrimSpace(code)
	packageID = strings.TrimSpace(packageID)
	if code == "" || packageID == "" {
		return PromoQuote{}, fmt.Errorf("%w: promoCode and packageId are required", ErrValidation)
	}

	pkg, ok := u.catalog.Get(packageID)
	if !ok {
		return PromoQuote{}, fmt.Errorf("%w: %s", ErrInvalidPackage, packageID)
	}

	promo, discount, err := lookupPromo(ctx, u.promos, code, pkg.Price, u.now())
	if err != nil {
		u.log.Info("promo rejected", zap.String("code", code), zap.String("package_id", packageID), zap.Error(err))
		return PromoQuote{}, err
	}

	return PromoQuote{
		Code:          promo.Code,
		DiscountType:  promo.DiscountType,
		DiscountValue: discount,
	}, nil
}

// lookupPromo loads code and validates it against basePrice.
func lookupPromo(ctx context.Context, repo interfaces.IPromoCodeRepository, code string, basePrice int64, now time.Time) (entities.PromoCode, int64, error) {
	promo, err := repo.GetByCode(ctx, code)
	if err != nil {
		return entities.PromoCode{}, 0, err
	}
	var p *entities.PromoCode
	if promo.Code != "" {
		p = &promo
	}
	discount, err := pricing.ValidatePromo(p, basePrice, now)
	if err != nil {
		return entities.PromoCode{}, 0, err
	}
	return promo, discount, nil
}
