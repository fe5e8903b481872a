package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/domain/pricing"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase/interfaces"
)

const serverPendingMessage = "Server creation is pending or in progress. Please wait."

// CheckoutInput is the client's price quote. TotalPrice keeps the client's
// fractional amount; it is only compared against the server total, never trusted.
type CheckoutInput struct {
	Username              string
	PhoneNumber           string
	PackageID             string
	PackageName           string
	TotalPrice            decimal.Decimal
	TaxPercentage         float64
	AppliedDiscountAmount int64
	AppliedPromoCode      string
	PaymentMethod         entities.PaymentMethod
}

type CheckoutResult struct {
	Order   entities.Order
	Quote   pricing.Quote
	Message string
}

// DepositStatusView is an advisory status read plus the authoritative order status.
type DepositStatusView struct {
	Snapshot    entities.DepositStatusSnapshot
	OrderID     string
	OrderStatus entities.OrderStatus
	Terminal    bool
}

type ServerDetailsView struct {
	OrderID     string
	OrderStatus entities.OrderStatus
	Terminal    bool
	Message     string
	Server      *entities.ServerDetails
}

type IOrderUseCase interface {
	Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error)
	GetDepositDetails(ctx context.Context, orderID, depositRef string) (entities.Order, error)
	GetDepositStatus(ctx context.Context, depositRef string) (DepositStatusView, error)
	GetServerDetails(ctx context.Context, orderID string) (ServerDetailsView, error)
}

// OrderUseCaseDeps wires an OrderUseCase. Cache and Metrics are optional.
type OrderUseCaseDeps struct {
	Orders         interfaces.IOrderRepository
	Customers      interfaces.ICustomerRepository
	Promos         interfaces.IPromoCodeRepository
	Catalog        *catalog.Catalog
	Gateways       []interfaces.IPaymentGateway
	Cache          interfaces.IStatusCache
	StatusCacheTTL time.Duration
	Metrics        interfaces.IOrderMetrics
	Logger         *zap.Logger
}

type OrderUseCase struct {
	orders    interfaces.IOrderRepository
	customers interfaces.ICustomerRepository
	promos    interfaces.IPromoCodeRepository
	catalog   *catalog.Catalog
	gateways  map[entities.PaymentMethod]interfaces.IPaymentGateway
	cache     interfaces.IStatusCache
	cacheTTL  time.Duration
	metrics   interfaces.IOrderMetrics
	log       *zap.Logger
	now       func() time.Time

	polls singleflight.Group
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(deps OrderUseCaseDeps) *OrderUseCase {
	u := &OrderUseCase{
		orders:    deps.Orders,
		customers: deps.Customers,
		promos:    deps.Promos,
		catalog:   deps.Catalog,
		gateways:  map[entities.PaymentMethod]interfaces.IPaymentGateway{},
		cache:     deps.Cache,
		cacheTTL:  deps.StatusCacheTTL,
		metrics:   deps.Metrics,
		log:       logger.Named(deps.Logger, "order_usecase"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, g := range deps.Gateways {
		u.gateways[g.Method()] = g
	}
	if u.metrics == nil {
		u.metrics = noopMetrics{}
	}
	return u
}

// Checkout prices the order on the server, opens the payment with the
// selected gateway and stores the order as awaiting_payment. Nothing is
// written when the price or promo checks fail.
func (u *OrderUseCase) Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.PackageID = strings.TrimSpace(in.PackageID)
	in.AppliedPromoCode = strings.TrimSpace(in.AppliedPromoCode)
	if in.PaymentMethod == "" {
		in.PaymentMethod = entities.PaymentMethodQRIS
	}

	res, err := u.checkout(ctx, in)
	result := "ok"
	if err != nil {
		result = checkoutFailureLabel(err)
	}
	u.metrics.ObserveCheckout(string(in.PaymentMethod), result)
	return res, err
}

func (u *OrderUseCase) checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	u.log.Info("checkout start", zap.String("username", in.Username), zap.String("package_id", in.PackageID), zap.String("method", string(in.PaymentMethod)))

	if in.Username == "" || in.PackageID == "" {
		return CheckoutResult{}, fmt.Errorf("%w: username and packageId are required", ErrValidation)
	}
	if !in.TotalPrice.IsPositive() {
		return CheckoutResult{}, fmt.Errorf("%w: totalPrice must be positive", ErrValidation)
	}
	if in.TaxPercentage < 0 || in.TaxPercentage > 100 {
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrValidation, pricing.ErrInvalidTax)
	}
	gw, ok := u.gateways[in.PaymentMethod]
	if !ok {
		return CheckoutResult{}, fmt.Errorf("%w: unsupported payment method %q", ErrValidation, in.PaymentMethod)
	}

	pkg, ok := u.catalog.Get(in.PackageID)
	if !ok {
		return CheckoutResult{}, fmt.Errorf("%w: %s", ErrInvalidPackage, in.PackageID)
	}

	now := u.now()
	var (
		discount  int64
		promoCode string
	)
	if in.AppliedPromoCode != "" {
		promo, d, err := lookupPromo(ctx, u.promos, in.AppliedPromoCode, pkg.Price, now)
		if err != nil {
			u.log.Info("checkout promo rejected", zap.String("code", in.AppliedPromoCode), zap.Error(err))
			return CheckoutResult{}, err
		}
		discount = d
		promoCode = promo.Code
		if in.AppliedDiscountAmount != 0 && in.AppliedDiscountAmount != discount {
			u.log.Warn("client discount differs from server discount",
				zap.String("code", promoCode),
				zap.Int64("client_discount", in.AppliedDiscountAmount),
				zap.Int64("server_discount", discount))
		}
	}

	quote, err := pricing.Reconcile(pkg.Price, discount, in.TaxPercentage, in.TotalPrice)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceMismatch) {
			u.log.Warn("checkout price mismatch",
				zap.String("package_id", pkg.ID),
				zap.String("client_total", in.TotalPrice.String()),
				zap.Int64("server_total", quote.Total),
				zap.Int64("discount", quote.Discount))
			return CheckoutResult{}, err
		}
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := u.customers.Upsert(ctx, entities.Customer{Username: in.Username, PhoneNumber: in.PhoneNumber}); err != nil {
		u.log.Error("customer upsert failed", zap.String("username", in.Username), zap.Error(err))
		return CheckoutResult{}, err
	}

	orderID, reffID := newOrderRefs(now)
	packageName := strings.TrimSpace(in.PackageName)
	if packageName == "" {
		packageName = pkg.DisplayName
	}

	intent, err := gw.CreatePaymentIntent(ctx, entities.PaymentIntentRequest{
		OrderID:      orderID,
		ReffID:       reffID,
		Amount:       quote.Total,
		CustomerName: in.Username,
		PhoneNumber:  in.PhoneNumber,
		PackageID:    pkg.ID,
		PackageName:  packageName,
	})
	if err != nil {
		u.log.Error("payment intent failed", zap.String("order_id", orderID), zap.Error(err))
		return CheckoutResult{}, err
	}
	if strings.TrimSpace(intent.DepositRef) == "" {
		return CheckoutResult{}, fmt.Errorf("%w: empty deposit reference", ErrUpstreamGateway)
	}

	taxPct, _ := quote.TaxPercentage.Float64()
	order, err := u.orders.Create(ctx, entities.Order{
		OrderID:          orderID,
		CustomerRef:      in.Username,
		PhoneNumber:      in.PhoneNumber,
		PackageID:        pkg.ID,
		PackageName:      packageName,
		BasePrice:        quote.BasePrice,
		AppliedPromoCode: promoCode,
		DiscountAmount:   quote.Discount,
		TaxPercentage:    taxPct,
		TotalPrice:       quote.Total,
		PaymentMethod:    gw.Method(),
		DepositRef:       intent.DepositRef,
		ReffID:           reffID,
		Status:           entities.OrderStatusAwaitingPayment,
		DepositStatus:    intent.Status,
		Deposit:          intent.Deposit,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		u.log.Error("order create failed", zap.String("order_id", orderID), zap.String("deposit_ref", intent.DepositRef), zap.Error(err))
		return CheckoutResult{}, err
	}

	u.log.Info("checkout success",
		zap.String("order_id", order.OrderID),
		zap.String("deposit_ref", order.DepositRef),
		zap.Int64("total", order.TotalPrice))
	return CheckoutResult{
		Order:   order,
		Quote:   quote,
		Message: "Deposit created, please continue with the payment.",
	}, nil
}

func (u *OrderUseCase) GetDepositDetails(ctx context.Context, orderID, depositRef string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	depositRef = strings.TrimSpace(depositRef)
	if orderID == "" || depositRef == "" {
		return entities.Order{}, fmt.Errorf("%w: order_id and deposit_id are required", ErrValidation)
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.OrderID == "" || o.DepositRef != depositRef {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// GetDepositStatus polls the provider for the deposit behind depositRef and
// mirrors the answer into DepositStatus. It never moves the order status;
// only verified notifications do. Concurrent polls for one deposit share a
// single upstream call and its cached answer.
func (u *OrderUseCase) GetDepositStatus(ctx context.Context, depositRef string) (DepositStatusView, error) {
	depositRef = strings.TrimSpace(depositRef)
	if depositRef == "" {
		return DepositStatusView{}, fmt.Errorf("%w: deposit_id is required", ErrValidation)
	}

	o, err := u.orders.GetByDepositRef(ctx, depositRef)
	if err != nil {
		return DepositStatusView{}, err
	}
	if o.OrderID == "" {
		return DepositStatusView{}, ErrOrderNotFound
	}

	view := DepositStatusView{
		OrderID:     o.OrderID,
		OrderStatus: o.Status,
		Terminal:    o.Status.IsTerminal(),
	}
	if !o.Status.AcceptsPaymentUpdates() {
		view.Snapshot = storedSnapshot(o, u.now())
		return view, nil
	}

	// Callers joining the flight share its result, so it must not end with
	// the first caller's request. Gateways bound the call with their own timeouts.
	pollCtx := context.WithoutCancel(ctx)
	v, err, _ := u.polls.Do(depositRef, func() (any, error) {
		return u.pollDepositStatus(pollCtx, o)
	})
	if err != nil {
		return DepositStatusView{}, err
	}
	view.Snapshot = v.(entities.DepositStatusSnapshot)
	return view, nil
}

func (u *OrderUseCase) pollDepositStatus(ctx context.Context, o entities.Order) (entities.DepositStatusSnapshot, error) {
	if u.cache != nil {
		snap, ok, err := u.cache.GetDepositStatus(ctx, o.DepositRef)
		if err != nil {
			u.log.Warn("deposit status cache read failed", zap.String("deposit_ref", o.DepositRef), zap.Error(err))
		}
		if ok {
			return snap, nil
		}
	}

	gw, ok := u.gateways[o.PaymentMethod]
	if !ok {
		u.log.Warn("no gateway for order payment method", zap.String("order_id", o.OrderID), zap.String("method", string(o.PaymentMethod)))
		return storedSnapshot(o, u.now()), nil
	}

	snap, err := gw.CheckStatus(ctx, o)
	if err != nil {
		return entities.DepositStatusSnapshot{}, err
	}
	if snap.DepositRef == "" {
		snap.DepositRef = o.DepositRef
	}

	if u.cache != nil && u.cacheTTL > 0 {
		if err := u.cache.SetDepositStatus(ctx, snap, u.cacheTTL); err != nil {
			u.log.Warn("deposit status cache write failed", zap.String("deposit_ref", o.DepositRef), zap.Error(err))
		}
	}
	if snap.Status != "" && snap.Status != o.DepositStatus {
		if err := u.orders.UpdateDepositStatus(ctx, o.OrderID, snap.Status); err != nil {
			return entities.DepositStatusSnapshot{}, err
		}
	}
	return snap, nil
}

func (u *OrderUseCase) GetServerDetails(ctx context.Context, orderID string) (ServerDetailsView, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ServerDetailsView{}, fmt.Errorf("%w: order_id is required", ErrValidation)
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return ServerDetailsView{}, err
	}
	if o.OrderID == "" {
		return ServerDetailsView{}, ErrOrderNotFound
	}

	view := ServerDetailsView{
		OrderID:     o.OrderID,
		OrderStatus: o.Status,
		Terminal:    o.Status.IsTerminal(),
	}
	switch {
	case o.Status == entities.OrderStatusActive && o.ServerDetails != nil:
		sd := *o.ServerDetails
		if sd.Name == "" {
			sd.Name = o.PackageName
		}
		view.Server = &sd
		view.Message = "Server is active."
	case o.Status.IsFailed():
		view.Message = "Server creation failed."
		if o.Error != "" {
			view.Message += " " + o.Error
		}
	default:
		view.Message = serverPendingMessage
	}
	return view, nil
}

func storedSnapshot(o entities.Order, now time.Time) entities.DepositStatusSnapshot {
	return entities.DepositStatusSnapshot{
		DepositRef: o.DepositRef,
		Status:     o.DepositStatus,
		Nominal:    o.TotalPrice,
		Method:     string(o.PaymentMethod),
		CheckedAt:  now,
	}
}

// newOrderRefs returns the order id and the reference sent to the QRIS
// provider. The random suffix keeps ids unique within one millisecond.
func newOrderRefs(now time.Time) (orderID, reffID string) {
	ms := now.UnixMilli()
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("AMAT-%d-%s", ms, suffix), fmt.Sprintf("REF-%d-%s", ms, suffix)
}

func checkoutFailureLabel(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidPackage):
		return "invalid"
	case errors.Is(err, ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, ErrPromoNotFound), errors.Is(err, ErrPromoExhausted):
		return "promo_rejected"
	case errors.Is(err, ErrUpstreamGateway):
		return "gateway_error"
	default:
		return "error"
	}
}
