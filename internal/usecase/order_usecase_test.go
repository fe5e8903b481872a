package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"amat_hosting/internal/adapter/persistence/memory"
	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
	mock_interfaces "amat_hosting/internal/usecase/interfaces/mocks"
)

type orderFixture struct {
	store *memory.Store
	qris  *mock_interfaces.MockIPaymentGateway
	cache *mock_interfaces.MockIStatusCache
	uc    *OrderUseCase
}

func newOrderFixture(t *testing.T) orderFixture {
	ctrl := gomock.NewController(t)
	store := memory.NewStore()
	qris := mock_interfaces.NewMockIPaymentGateway(ctrl)
	qris.EXPECT().Method().Return(entities.PaymentMethodQRIS).AnyTimes()
	cache := mock_interfaces.NewMockIStatusCache(ctrl)

	uc := NewOrderUseCase(OrderUseCaseDeps{
		Orders:         store,
		Customers:      store,
		Promos:         store,
		Catalog:        catalog.Default(),
		Gateways:       []interfaces.IPaymentGateway{qris},
		Cache:          cache,
		StatusCacheTTL: 5 * time.Second,
	})
	return orderFixture{store: store, qris: qris, cache: cache, uc: uc}
}

func qrisIntent(amount int64) entities.PaymentIntent {
	now := time.Now().UTC()
	expires := now.Add(30 * time.Minute)
	return entities.PaymentIntent{
		DepositRef: "DEP-1",
		Status:     "pending",
		Deposit: entities.Deposit{
			Method:     entities.PaymentMethodQRIS,
			QRImageURL: "https://qr.example.com/DEP-1.png",
			Nominal:    amount,
			CreatedAt:  &now,
			ExpiredAt:  &expires,
		},
	}
}

func TestOrderUseCase_Checkout(t *testing.T) {
	t.Run("creates awaiting_payment order at the server price", func(t *testing.T) {
		f := newOrderFixture(t)

		f.qris.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
				if req.Amount != 550 || req.PackageID != "bot-sentinel" || req.CustomerName != "alice" {
					t.Fatalf("unexpected intent request: %+v", req)
				}
				if !strings.HasPrefix(req.OrderID, "AMAT-") || !strings.HasPrefix(req.ReffID, "REF-") {
					t.Fatalf("unexpected refs: %s %s", req.OrderID, req.ReffID)
				}
				return qrisIntent(req.Amount), nil
			},
		)

		res, err := f.uc.Checkout(context.Background(), CheckoutInput{
			Username:      " alice ",
			PhoneNumber:   "62812",
			PackageID:     "bot-sentinel",
			PackageName:   "Bot Sentinel",
			TotalPrice:    decimal.NewFromInt(550),
			TaxPercentage: 10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		o := res.Order
		if o.Status != entities.OrderStatusAwaitingPayment || o.TotalPrice != 550 || o.DepositRef != "DEP-1" {
			t.Fatalf("unexpected order: %+v", o)
		}
		if o.PaymentMethod != entities.PaymentMethodQRIS || o.CustomerRef != "alice" {
			t.Fatalf("unexpected order fields: %+v", o)
		}

		stored, _ := f.store.GetByDepositRef(context.Background(), "DEP-1")
		if stored.OrderID != o.OrderID {
			t.Fatalf("expected order indexed by deposit ref")
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		f := newOrderFixture(t)
		f.qris.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(qrisIntent(550), nil)

		res, err := f.uc.Checkout(context.Background(), CheckoutInput{Username: "alice", PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(549), TaxPercentage: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Order.TotalPrice != 550 {
			t.Fatalf("expected server total 550, got %d", res.Order.TotalPrice)
		}
	})

	t.Run("price mismatch writes nothing", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.uc.Checkout(context.Background(), CheckoutInput{Username: "alice", PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(500), TaxPercentage: 10})
		if !errors.Is(err, ErrPriceMismatch) {
			t.Fatalf("expected ErrPriceMismatch, got %v", err)
		}
		if o, _ := f.store.GetByDepositRef(context.Background(), "DEP-1"); o.OrderID != "" {
			t.Fatalf("expected no order, got %+v", o)
		}
	})

	t.Run("promo discount applied", func(t *testing.T) {
		f := newOrderFixture(t)
		f.store.PutPromoCode(entities.PromoCode{Code: "DISKON10", DiscountType: entities.DiscountTypePercentage, DiscountValue: 10, IsActive: true})
		f.qris.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(qrisIntent(59400), nil)

		res, err := f.uc.Checkout(context.Background(), CheckoutInput{
			Username:              "bob",
			PackageID:             "bot-guardian",
			TotalPrice:            decimal.NewFromInt(59400),
			TaxPercentage:         10,
			AppliedPromoCode:      "DISKON10",
			AppliedDiscountAmount: 6000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Order.DiscountAmount != 6000 || res.Order.AppliedPromoCode != "DISKON10" || res.Order.TotalPrice != 59400 {
			t.Fatalf("unexpected order: %+v", res.Order)
		}
		p, _ := f.store.GetByCode(context.Background(), "DISKON10")
		if p.CurrentUsage != 0 {
			t.Fatalf("usage must only be counted on payment, got %d", p.CurrentUsage)
		}
	})

	t.Run("unknown promo", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.uc.Checkout(context.Background(), CheckoutInput{Username: "bob", PackageID: "bot-guardian", TotalPrice: decimal.NewFromInt(59400), TaxPercentage: 10, AppliedPromoCode: "NOPE"})
		if !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("exhausted promo", func(t *testing.T) {
		f := newOrderFixture(t)
		limit := int64(3)
		f.store.PutPromoCode(entities.PromoCode{Code: "FULL", DiscountType: entities.DiscountTypeFixed, DiscountValue: 1000, IsActive: true, UsageLimit: &limit, CurrentUsage: 3})
		_, err := f.uc.Checkout(context.Background(), CheckoutInput{Username: "bob", PackageID: "bot-guardian", TotalPrice: decimal.NewFromInt(64900), TaxPercentage: 10, AppliedPromoCode: "FULL"})
		if !errors.Is(err, ErrPromoExhausted) {
			t.Fatalf("expected ErrPromoExhausted, got %v", err)
		}
	})

	t.Run("fractional total outside tolerance", func(t *testing.T) {
		// no CreatePaymentIntent expectation: the gateway must not be called
		f := newOrderFixture(t)

		_, err := f.uc.Checkout(context.Background(), CheckoutInput{
			Username:      "alice",
			PackageID:     "bot-sentinel",
			TotalPrice:    decimal.RequireFromString("556.4"),
			TaxPercentage: 11,
		})
		if !errors.Is(err, ErrPriceMismatch) {
			t.Fatalf("expected ErrPriceMismatch, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newOrderFixture(t)
		cases := []struct {
			name string
			in   CheckoutInput
			want error
		}{
			{"missing username", CheckoutInput{PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(550), TaxPercentage: 10}, ErrValidation},
			{"missing total", CheckoutInput{Username: "a", PackageID: "bot-sentinel", TaxPercentage: 10}, ErrValidation},
			{"tax out of range", CheckoutInput{Username: "a", PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(550), TaxPercentage: 101}, ErrValidation},
			{"unknown package", CheckoutInput{Username: "a", PackageID: "bot-unknown", TotalPrice: decimal.NewFromInt(550), TaxPercentage: 10}, ErrInvalidPackage},
			{"unsupported method", CheckoutInput{Username: "a", PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(550), TaxPercentage: 10, PaymentMethod: entities.PaymentMethodSnap}, ErrValidation},
		}
		for _, tc := range cases {
			if _, err := f.uc.Checkout(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
			}
		}
	})

	t.Run("gateway failure writes no order", func(t *testing.T) {
		f := newOrderFixture(t)
		f.qris.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{}, ErrUpstreamGateway)

		_, err := f.uc.Checkout(context.Background(), CheckoutInput{Username: "alice", PackageID: "bot-sentinel", TotalPrice: decimal.NewFromInt(550), TaxPercentage: 10})
		if !errors.Is(err, ErrUpstreamGateway) {
			t.Fatalf("expected ErrUpstreamGateway, got %v", err)
		}
	})
}

func TestOrderUseCase_GetDepositDetails(t *testing.T) {
	f := newOrderFixture(t)
	seedOrder(t, f.store, nil)

	if _, err := f.uc.GetDepositDetails(context.Background(), "", "DEP-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.uc.GetDepositDetails(context.Background(), "AMAT-1", "DEP-2"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for mismatched deposit, got %v", err)
	}
	o, err := f.uc.GetDepositDetails(context.Background(), "AMAT-1", "DEP-1")
	if err != nil || o.OrderID != "AMAT-1" {
		t.Fatalf("unexpected result: %+v %v", o, err)
	}
}

func TestOrderUseCase_GetDepositStatus(t *testing.T) {
	t.Run("cache miss polls upstream and mirrors status", func(t *testing.T) {
		f := newOrderFixture(t)
		seedOrder(t, f.store, func(o *entities.Order) { o.DepositStatus = "pending" })

		snap := entities.DepositStatusSnapshot{DepositRef: "DEP-1", Status: "success", Nominal: 550, Method: "QRISFAST"}
		f.cache.EXPECT().GetDepositStatus(gomock.Any(), "DEP-1").Return(entities.DepositStatusSnapshot{}, false, nil)
		f.qris.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).Return(snap, nil)
		f.cache.EXPECT().SetDepositStatus(gomock.Any(), snap, 5*time.Second).Return(nil)

		view, err := f.uc.GetDepositStatus(context.Background(), "DEP-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Snapshot.Status != "success" || view.OrderStatus != entities.OrderStatusAwaitingPayment || view.Terminal {
			t.Fatalf("unexpected view: %+v", view)
		}

		o, _ := f.store.GetByID(context.Background(), "AMAT-1")
		if o.DepositStatus != "success" {
			t.Fatalf("expected deposit status mirrored, got %q", o.DepositStatus)
		}
		if o.Status != entities.OrderStatusAwaitingPayment {
			t.Fatalf("polling must not move the order, got %s", o.Status)
		}
	})

	t.Run("poll outlives the caller that started it", func(t *testing.T) {
		f := newOrderFixture(t)
		seedOrder(t, f.store, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		snap := entities.DepositStatusSnapshot{DepositRef: "DEP-1", Status: "pending"}
		f.cache.EXPECT().GetDepositStatus(gomock.Any(), "DEP-1").Return(entities.DepositStatusSnapshot{}, false, nil)
		f.qris.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ entities.Order) (entities.DepositStatusSnapshot, error) {
				if err := ctx.Err(); err != nil {
					t.Fatalf("shared poll saw a canceled context: %v", err)
				}
				return snap, nil
			},
		)
		f.cache.EXPECT().SetDepositStatus(gomock.Any(), snap, 5*time.Second).Return(nil)

		view, err := f.uc.GetDepositStatus(ctx, "DEP-1")
		if err != nil || view.Snapshot.Status != "pending" {
			t.Fatalf("unexpected result: %+v %v", view, err)
		}
	})

	t.Run("cache hit skips upstream", func(t *testing.T) {
		f := newOrderFixture(t)
		seedOrder(t, f.store, nil)

		f.cache.EXPECT().GetDepositStatus(gomock.Any(), "DEP-1").Return(entities.DepositStatusSnapshot{DepositRef: "DEP-1", Status: "pending"}, true, nil)

		view, err := f.uc.GetDepositStatus(context.Background(), "DEP-1")
		if err != nil || view.Snapshot.Status != "pending" {
			t.Fatalf("unexpected result: %+v %v", view, err)
		}
	})

	t.Run("terminal order answers from the store", func(t *testing.T) {
		f := newOrderFixture(t)
		seedOrder(t, f.store, func(o *entities.Order) {
			o.Status = entities.OrderStatusFailed
			o.DepositStatus = "EXPIRED"
		})

		view, err := f.uc.GetDepositStatus(context.Background(), "DEP-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !view.Terminal || view.Snapshot.Status != "EXPIRED" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("unknown deposit", func(t *testing.T) {
		f := newOrderFixture(t)
		if _, err := f.uc.GetDepositStatus(context.Background(), "DEP-404"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		f := newOrderFixture(t)
		seedOrder(t, f.store, nil)

		f.cache.EXPECT().GetDepositStatus(gomock.Any(), "DEP-1").Return(entities.DepositStatusSnapshot{}, false, errors.New("redis down"))
		f.qris.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).Return(entities.DepositStatusSnapshot{}, ErrUpstreamGateway)

		if _, err := f.uc.GetDepositStatus(context.Background(), "DEP-1"); !errors.Is(err, ErrUpstreamGateway) {
			t.Fatalf("expected ErrUpstreamGateway, got %v", err)
		}
	})
}

func TestOrderUseCase_GetServerDetails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.uc.GetServerDetails(ctx, "AMAT-404"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	seedOrder(t, f.store, nil)
	view, err := f.uc.GetServerDetails(ctx, "AMAT-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Terminal || view.Server != nil || view.Message != serverPendingMessage {
		t.Fatalf("unexpected pending view: %+v", view)
	}

	if _, _, err := f.store.ConfirmPayment(ctx, "AMAT-1", entities.OrderStatusAwaitingPayment, "SUCCESS", ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, _, err := f.store.Transition(ctx, "AMAT-1", entities.OrderStatusPaid, entities.OrderStatusProvisioning, entities.OrderPatch{}); err != nil {
		t.Fatalf("claim: %v", err)
	}
	server := sampleServer()
	server.Name = ""
	if _, _, err := f.store.Transition(ctx, "AMAT-1", entities.OrderStatusProvisioning, entities.OrderStatusActive, entities.OrderPatch{ServerDetails: &server}); err != nil {
		t.Fatalf("activate: %v", err)
	}

	view, err = f.uc.GetServerDetails(ctx, "AMAT-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Terminal || view.Server == nil || view.Server.Name != "Bot Sentinel" {
		t.Fatalf("unexpected active view: %+v", view)
	}
}
