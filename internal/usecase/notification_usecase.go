package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase/interfaces"
)

// NotificationOutcome tells the webhook caller what a delivery did. Every
// outcome is acknowledged with 200.
type NotificationOutcome string

const (
	// OutcomeProcessed: the delivery moved the order.
	OutcomeProcessed NotificationOutcome = "processed"
	// OutcomeAlreadyProcessed: the order was already past this point, or a
	// concurrent delivery got there first. Nothing was written.
	OutcomeAlreadyProcessed NotificationOutcome = "already_processed"
	// OutcomeIgnored: the provider status does not map to a transition.
	OutcomeIgnored NotificationOutcome = "ignored"
)

type NotificationResult struct {
	Outcome NotificationOutcome
	OrderID string
	Status  entities.OrderStatus
}

type INotificationUseCase interface {
	HandleNotification(ctx context.Context, provider entities.PaymentProvider, header http.Header, body []byte) (NotificationResult, error)
}

// NotificationUseCase turns provider callbacks into order transitions and
// provisions the server once payment is confirmed. Every write is
// conditional on the status read before it, so duplicated or reordered
// deliveries reach the provisioner at most once per order.
type NotificationUseCase struct {
	orders      interfaces.IOrderRepository
	gateways    map[entities.PaymentProvider]interfaces.IPaymentGateway
	catalog     *catalog.Catalog
	provisioner interfaces.IProvisioner
	publisher   interfaces.IOrderEventPublisher
	metrics     interfaces.IOrderMetrics
	log         *zap.Logger
	now         func() time.Time
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

// NewNotificationUseCase builds the reconciler. publisher and metrics may be nil.
func NewNotificationUseCase(
	orders interfaces.IOrderRepository,
	gateways []interfaces.IPaymentGateway,
	cat *catalog.Catalog,
	provisioner interfaces.IProvisioner,
	publisher interfaces.IOrderEventPublisher,
	metrics interfaces.IOrderMetrics,
	log *zap.Logger,
) *NotificationUseCase {
	u := &NotificationUseCase{
		orders:      orders,
		gateways:    map[entities.PaymentProvider]interfaces.IPaymentGateway{},
		catalog:     cat,
		provisioner: provisioner,
		publisher:   publisher,
		metrics:     metrics,
		log:         logger.Named(log, "notification_usecase"),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, g := range gateways {
		u.gateways[g.Provider()] = g
	}
	if u.metrics == nil {
		u.metrics = noopMetrics{}
	}
	return u
}

func (u *NotificationUseCase) HandleNotification(ctx context.Context, provider entities.PaymentProvider, header http.Header, body []byte) (NotificationResult, error) {
	res, err := u.handle(ctx, provider, header, body)
	outcome := string(res.Outcome)
	if err != nil {
		outcome = notificationFailureLabel(err)
	}
	u.metrics.ObserveNotification(string(provider), outcome)
	return res, err
}

func (u *NotificationUseCase) handle(ctx context.Context, provider entities.PaymentProvider, header http.Header, body []byte) (NotificationResult, error) {
	gw, ok := u.gateways[provider]
	if !ok {
		return NotificationResult{}, fmt.Errorf("%w: no gateway for provider %q", ErrValidation, provider)
	}

	n, err := gw.VerifyCallback(header, body)
	if err != nil {
		u.log.Warn("notification rejected", zap.String("provider", string(provider)), zap.Error(err))
		return NotificationResult{}, err
	}
	log := u.log.With(
		zap.String("provider", string(provider)),
		zap.String("deposit_ref", n.DepositRef),
		zap.String("provider_order_id", n.OrderID),
		zap.String("provider_status", n.Status),
		zap.String("fraud_status", n.FraudStatus),
	)
	log.Info("notification received")

	order, err := u.lookup(ctx, n)
	if err != nil {
		return NotificationResult{}, err
	}
	// A gateway only settles orders it opened. Without this a callback on the
	// unsigned QRIS route could settle a snap order by its token.
	if order.PaymentMethod != gw.Method() {
		log.Warn("notification for an order of another payment method",
			zap.String("order_id", order.OrderID),
			zap.String("order_method", string(order.PaymentMethod)))
		return NotificationResult{}, fmt.Errorf("%w: no %s order for this reference", ErrOrderNotFound, gw.Method())
	}
	log = log.With(zap.String("order_id", order.OrderID), zap.String("order_status", string(order.Status)))
	res := NotificationResult{OrderID: order.OrderID, Status: order.Status}

	if !order.Status.AcceptsPaymentUpdates() {
		log.Info("notification already processed")
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	}

	target, ok := entities.MapProviderStatus(n.Status, n.FraudStatus)
	if !ok {
		log.Info("notification status ignored")
		res.Outcome = OutcomeIgnored
		return res, nil
	}
	if !entities.CanTransition(order.Status, target) {
		log.Info("notification does not advance order", zap.String("target", string(target)))
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	}
	if target == entities.OrderStatusPaid && n.Amount != 0 && n.Amount != order.TotalPrice {
		if n.Amount < order.TotalPrice {
			log.Warn("paid notification below order total; order left unpaid",
				zap.Int64("amount", n.Amount), zap.Int64("total", order.TotalPrice))
			res.Outcome = OutcomeIgnored
			return res, nil
		}
		log.Warn("paid notification above order total",
			zap.Int64("amount", n.Amount), zap.Int64("total", order.TotalPrice))
	}

	// Past this point the order may reach the provisioner. A client hanging
	// up must not strand it half way.
	ctx = context.WithoutCancel(ctx)

	if target != entities.OrderStatusPaid {
		updated, applied, err := u.orders.Transition(ctx, order.OrderID, order.Status, target, entities.OrderPatch{
			DepositStatus: n.Status,
			Error:         paymentFailureMessage(target, n),
		})
		if err != nil {
			return NotificationResult{}, err
		}
		if !applied {
			log.Info("notification lost race", zap.String("current_status", string(updated.Status)))
			res.Outcome = OutcomeAlreadyProcessed
			res.Status = updated.Status
			return res, nil
		}
		u.metrics.ObserveTransition(string(target))
		u.publishTerminal(ctx, updated)
		log.Info("order transitioned", zap.String("to", string(target)))
		res.Outcome = OutcomeProcessed
		res.Status = updated.Status
		return res, nil
	}

	paid, outcome, err := u.orders.ConfirmPayment(ctx, order.OrderID, order.Status, n.Status, order.AppliedPromoCode)
	if err != nil {
		return NotificationResult{}, err
	}
	switch outcome {
	case interfaces.ConfirmStale:
		log.Info("notification lost race", zap.String("current_status", string(paid.Status)))
		res.Outcome = OutcomeAlreadyProcessed
		res.Status = paid.Status
		return res, nil
	case interfaces.ConfirmPromoExhausted:
		return u.failPromoExhausted(ctx, log, order, n)
	}
	u.metrics.ObserveTransition(string(entities.OrderStatusPaid))
	log.Info("order paid")

	final, err := u.provision(ctx, log, paid)
	if err != nil {
		return NotificationResult{}, err
	}
	res.Outcome = OutcomeProcessed
	res.Status = final.Status
	return res, nil
}

func (u *NotificationUseCase) lookup(ctx context.Context, n entities.PaymentNotification) (entities.Order, error) {
	var (
		o   entities.Order
		err error
	)
	switch {
	case n.DepositRef != "":
		o, err = u.orders.GetByDepositRef(ctx, n.DepositRef)
	case n.OrderID != "":
		o, err = u.orders.GetByID(ctx, n.OrderID)
	default:
		return entities.Order{}, fmt.Errorf("%w: no order reference", ErrMalformedNotification)
	}
	if err != nil {
		return entities.Order{}, err
	}
	if o.OrderID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// failPromoExhausted fails an order whose promo ran out between checkout and
// payment. The payment itself is left for manual refund.
func (u *NotificationUseCase) failPromoExhausted(ctx context.Context, log *zap.Logger, order entities.Order, n entities.PaymentNotification) (NotificationResult, error) {
	msg := fmt.Sprintf("promo code %s reached its usage limit before payment was confirmed", order.AppliedPromoCode)
	updated, applied, err := u.orders.Transition(ctx, order.OrderID, order.Status, entities.OrderStatusFailedPromoExhausted, entities.OrderPatch{
		DepositStatus: n.Status,
		Error:         msg,
	})
	if err != nil {
		return NotificationResult{}, err
	}
	res := NotificationResult{OrderID: order.OrderID, Status: updated.Status}
	if !applied {
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	}
	u.metrics.ObserveTransition(string(entities.OrderStatusFailedPromoExhausted))
	u.publishTerminal(ctx, updated)
	log.Warn("order failed: promo exhausted", zap.String("promo_code", order.AppliedPromoCode))
	res.Outcome = OutcomeProcessed
	return res, nil
}

// provision claims the paid order and creates its server. Provisioning
// failures are terminal and returned as a failed order, not an error; only
// datastore errors surface.
func (u *NotificationUseCase) provision(ctx context.Context, log *zap.Logger, order entities.Order) (entities.Order, error) {
	pkg, ok := u.catalog.Get(order.PackageID)
	if !ok {
		return u.finish(ctx, log, order, entities.OrderStatusPaid, entities.OrderStatusFailedInvalidPackage, entities.OrderPatch{
			Error: fmt.Sprintf("%v: %s", ErrInvalidPackage, order.PackageID),
		})
	}

	claimed, applied, err := u.orders.Transition(ctx, order.OrderID, entities.OrderStatusPaid, entities.OrderStatusProvisioning, entities.OrderPatch{})
	if err != nil {
		return entities.Order{}, err
	}
	if !applied {
		log.Info("provisioning already claimed", zap.String("current_status", string(claimed.Status)))
		return claimed, nil
	}
	u.metrics.ObserveTransition(string(entities.OrderStatusProvisioning))

	log.Info("provisioning start", zap.String("package_id", pkg.ID))
	start := time.Now()
	details, err := u.provisioner.Provision(ctx, claimed, pkg)
	elapsed := time.Since(start)
	if err != nil {
		status := entities.OrderStatusFailedServerCreationAPICallError
		var pe *entities.ProvisioningError
		if errors.As(err, &pe) {
			status = pe.FailureStatus()
		}
		u.metrics.ObserveProvisioning("failed", elapsed)
		log.Error("provisioning failed", zap.String("to", string(status)), zap.Duration("elapsed", elapsed), zap.Error(err))
		return u.finish(ctx, log, claimed, entities.OrderStatusProvisioning, status, entities.OrderPatch{Error: err.Error()})
	}
	u.metrics.ObserveProvisioning("ok", elapsed)

	activatedAt := u.now()
	return u.finish(ctx, log, claimed, entities.OrderStatusProvisioning, entities.OrderStatusActive, entities.OrderPatch{
		ServerDetails: &details,
		ActivatedAt:   &activatedAt,
	})
}

func (u *NotificationUseCase) finish(ctx context.Context, log *zap.Logger, order entities.Order, from, to entities.OrderStatus, patch entities.OrderPatch) (entities.Order, error) {
	updated, applied, err := u.orders.Transition(ctx, order.OrderID, from, to, patch)
	if err != nil {
		log.Error("order final write failed", zap.String("to", string(to)), zap.Error(err))
		return entities.Order{}, err
	}
	if !applied {
		log.Warn("order moved during provisioning", zap.String("current_status", string(updated.Status)))
		return updated, nil
	}
	u.metrics.ObserveTransition(string(to))
	u.publishTerminal(ctx, updated)
	log.Info("order transitioned", zap.String("to", string(to)))
	return updated, nil
}

func (u *NotificationUseCase) publishTerminal(ctx context.Context, o entities.Order) {
	if u.publisher == nil || !o.Status.IsTerminal() {
		return
	}
	if err := u.publisher.Publish(ctx, entities.NewOrderEvent(o, u.now())); err != nil {
		u.log.Warn("order event publish failed", zap.String("order_id", o.OrderID), zap.String("status", string(o.Status)), zap.Error(err))
	}
}

func paymentFailureMessage(target entities.OrderStatus, n entities.PaymentNotification) string {
	if target != entities.OrderStatusFailed {
		return ""
	}
	if n.FraudStatus != "" {
		return fmt.Sprintf("payment %s (fraud status %s)", n.Status, n.FraudStatus)
	}
	return "payment " + n.Status
}

func notificationFailureLabel(err error) string {
	switch {
	case errors.Is(err, ErrNotificationUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrMalformedNotification), errors.Is(err, ErrValidation):
		return "malformed"
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
