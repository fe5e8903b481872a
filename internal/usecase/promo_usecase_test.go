package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/domain/entities"
	mock_interfaces "amat_hosting/internal/usecase/interfaces/mocks"
)

func TestPromoUseCase_Validate(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		uc := NewPromoUseCase(nil, catalog.Default(), nil)
		if _, err := uc.Validate(context.Background(), " ", "bot-sentinel"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if _, err := uc.Validate(context.Background(), "X", "bot-unknown"); !errors.Is(err, ErrInvalidPackage) {
			t.Fatalf("expected ErrInvalidPackage, got %v", err)
		}
	})

	t.Run("percentage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPromoCodeRepository(ctrl)
		uc := NewPromoUseCase(repo, catalog.Default(), nil)

		repo.EXPECT().GetByCode(gomock.Any(), "DISKON10").Return(entities.PromoCode{
			Code: "DISKON10", DiscountType: entities.DiscountTypePercentage, DiscountValue: 10, IsActive: true,
		}, nil)

		q, err := uc.Validate(context.Background(), " DISKON10 ", "bot-guardian")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.DiscountValue != 6000 || q.DiscountType != entities.DiscountTypePercentage || q.Code != "DISKON10" {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})

	t.Run("fixed discount clamped to price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPromoCodeRepository(ctrl)
		uc := NewPromoUseCase(repo, catalog.Default(), nil)

		repo.EXPECT().GetByCode(gomock.Any(), "GRATIS").Return(entities.PromoCode{
			Code: "GRATIS", DiscountType: entities.DiscountTypeFixed, DiscountValue: 10000, IsActive: true,
		}, nil)

		q, err := uc.Validate(context.Background(), "GRATIS", "bot-sentinel")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.DiscountValue != 500 {
			t.Fatalf("expected discount clamped to 500, got %d", q.DiscountValue)
		}
	})

	t.Run("not found, inactive and expired look the same", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPromoCodeRepository(ctrl)
		uc := NewPromoUseCase(repo, catalog.Default(), nil)

		past := time.Now().Add(-time.Hour)
		repo.EXPECT().GetByCode(gomock.Any(), "MISSING").Return(entities.PromoCode{}, nil)
		repo.EXPECT().GetByCode(gomock.Any(), "OFF").Return(entities.PromoCode{Code: "OFF", DiscountType: entities.DiscountTypeFixed, DiscountValue: 1}, nil)
		repo.EXPECT().GetByCode(gomock.Any(), "OLD").Return(entities.PromoCode{Code: "OLD", DiscountType: entities.DiscountTypeFixed, DiscountValue: 1, IsActive: true, EndDate: &past}, nil)

		for _, code := range []string{"MISSING", "OFF", "OLD"} {
			if _, err := uc.Validate(context.Background(), code, "bot-sentinel"); !errors.Is(err, ErrPromoNotFound) {
				t.Fatalf("%s: expected ErrPromoNotFound, got %v", code, err)
			}
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPromoCodeRepository(ctrl)
		uc := NewPromoUseCase(repo, catalog.Default(), nil)

		limit := int64(5)
		repo.EXPECT().GetByCode(gomock.Any(), "FULL").Return(entities.PromoCode{
			Code: "FULL", DiscountType: entities.DiscountTypeFixed, DiscountValue: 1, IsActive: true, UsageLimit: &limit, CurrentUsage: 5,
		}, nil)

		if _, err := uc.Validate(context.Background(), "FULL", "bot-sentinel"); !errors.Is(err, ErrPromoExhausted) {
			t.Fatalf("expected ErrPromoExhausted, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPromoCodeRepository(ctrl)
		uc := NewPromoUseCase(repo, catalog.Default(), nil)

		repo.EXPECT().GetByCode(gomock.Any(), "X").Return(entities.PromoCode{}, errors.New("db"))

		if _, err := uc.Validate(context.Background(), "X", "bot-sentinel"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
