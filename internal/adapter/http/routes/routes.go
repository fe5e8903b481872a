package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "amat_hosting/docs"
	"amat_hosting/internal/adapter/http/handlers"
	"amat_hosting/internal/infrastructure/metrics"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Order   *handlers.OrderHandler
	Promo   *handlers.PromoHandler
	Webhook *handlers.WebhookHandler
	Metrics *metrics.Metrics
	// MetricsHandler defaults to the process-wide Prometheus registry.
	MetricsHandler http.Handler
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.Default()
	if h.Metrics != nil {
		router.Use(h.Metrics.GinMiddleware())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	metricsHandler := h.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	root := &router.RouterGroup
	addPingRoutes(root)
	addOrderRoutes(root, h.Order)
	addPromoRoutes(root, h.Promo)
	addWebhookRoutes(root, h.Webhook)
	return router
}
