package routes

import (
	"github.com/gin-gonic/gin"

	"amat_hosting/internal/adapter/http/handlers"
)

const (
	PathOrder   = "/order"
	PathPromo   = "/promo"
	PathWebhook = "/webhook"
)

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrder)
	{
		orders.POST("/price-quote-and-deposit", h.Checkout)
		orders.GET("/deposit-details", h.GetDepositDetails)
		orders.GET("/status", h.GetDepositStatus)
		orders.GET("/server-details", h.GetServerDetails)
	}
}

func addPromoRoutes(rg *gin.RouterGroup, h *handlers.PromoHandler) {
	rg.Group(PathPromo).POST("/validate", h.Validate)
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhook)
	{
		webhooks.POST("/payment-provider-a", h.ProviderA)
		webhooks.POST("/payment-provider-b", h.ProviderB)
	}
}
