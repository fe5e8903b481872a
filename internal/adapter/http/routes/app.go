package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"amat_hosting/internal/adapter/http/handlers"
	"amat_hosting/internal/adapter/persistence/memory"
	"amat_hosting/internal/adapter/persistence/repository"
	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/catalog"
	"amat_hosting/internal/infrastructure/cache"
	"amat_hosting/internal/infrastructure/database"
	"amat_hosting/internal/infrastructure/messaging"
	"amat_hosting/internal/infrastructure/metrics"
	"amat_hosting/internal/infrastructure/payments"
	"amat_hosting/internal/infrastructure/provisioning"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase"
	"amat_hosting/internal/usecase/interfaces"
)

const shutdownTimeout = 5 * time.Second

type repositories struct {
	orders    interfaces.IOrderRepository
	customers interfaces.ICustomerRepository
	promos    interfaces.IPromoCodeRepository
}

// Run wires the service and serves HTTP until SIGINT or SIGTERM.
func Run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h, cleanup, err := buildHandlers(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func buildHandlers(ctx context.Context, cfg config.Config, log *zap.Logger, reg prometheus.Registerer) (Handlers, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close failed", zap.Error(err))
			}
		}
	}
	fail := func(err error) (Handlers, func(), error) {
		cleanup()
		return Handlers{}, func() {}, err
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return fail(fmt.Errorf("load package catalog: %w", err))
		}
		cat = loaded
	}

	repos, err := buildRepositories(ctx, cfg.Store, log)
	if err != nil {
		return fail(err)
	}

	gateways, err := buildGateways(cfg, log)
	if err != nil {
		return fail(err)
	}

	store, err := cache.NewStore(ctx, cfg.Cache, logger.Named(log, "cache"))
	if err != nil {
		return fail(fmt.Errorf("init cache: %w", err))
	}
	closers = append(closers, store.Close)

	bus, err := messaging.NewClient(cfg.Messaging, logger.Named(log, "messaging"))
	if err != nil {
		return fail(fmt.Errorf("init messaging: %w", err))
	}
	closers = append(closers, bus.Close)

	m := metrics.New(reg)
	provisioner := provisioning.NewPanelClient(cfg.Panel, cfg.PaymentGatewayMock, log)

	orderUC := usecase.NewOrderUseCase(usecase.OrderUseCaseDeps{
		Orders:         repos.orders,
		Customers:      repos.customers,
		Promos:         repos.promos,
		Catalog:        cat,
		Gateways:       gateways,
		Cache:          cache.NewDepositStatusCache(store),
		StatusCacheTTL: cfg.Cache.DepositStatusTTL,
		Metrics:        m,
		Logger:         log,
	})
	promoUC := usecase.NewPromoUseCase(repos.promos, cat, log)
	notificationUC := usecase.NewNotificationUseCase(
		repos.orders,
		gateways,
		cat,
		provisioner,
		messaging.NewOrderEventPublisher(bus),
		m,
		log,
	)

	return Handlers{
		Order:   handlers.NewOrderHandler(orderUC, log),
		Promo:   handlers.NewPromoHandler(promoUC),
		Webhook: handlers.NewWebhookHandler(notificationUC, log),
		Metrics: m,
	}, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Store, log *zap.Logger) (repositories, error) {
	if cfg.Driver == config.StoreDriverMemory {
		log.Warn("using in-memory order store; data is lost on restart")
		s := memory.NewStore()
		return repositories{orders: s, customers: s, promos: s}, nil
	}

	ddb, err := database.NewDynamoDBProvider(cfg).Client(ctx)
	if err != nil {
		return repositories{}, fmt.Errorf("init dynamodb: %w", err)
	}
	return repositories{
		orders:    repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable, cfg.DepositRefsTable, cfg.PromoCodesTable),
		customers: repository.NewCustomerDynamoRepository(ddb, cfg.CustomersTable),
		promos:    repository.NewPromoCodeDynamoRepository(ddb, cfg.PromoCodesTable),
	}, nil
}

// buildGateways returns every gateway that has credentials. A missing
// provider only disables its payment method; at least one is required.
func buildGateways(cfg config.Config, log *zap.Logger) ([]interfaces.IPaymentGateway, error) {
	var gateways []interfaces.IPaymentGateway

	forest, err := payments.NewForestAPIGateway(cfg.ForestAPI, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("QRIS gateway disabled", zap.Error(err))
	} else {
		gateways = append(gateways, forest)
	}

	snap, err := payments.NewMidtransGateway(cfg.Midtrans, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("snap gateway disabled", zap.Error(err))
	} else {
		gateways = append(gateways, snap)
	}

	if len(gateways) == 0 {
		return nil, errors.New("no payment gateway configured")
	}
	return gateways, nil
}
