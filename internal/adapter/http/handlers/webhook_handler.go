package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	response "amat_hosting/internal/adapter/http/dto/response"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase"
	"amat_hosting/pkg"
)

const maxWebhookBody = 64 << 10

// WebhookHandler receives provider payment notifications. Any delivery the
// reconciler handled, no-ops included, is acknowledged with 200 so the
// provider stops retrying.
type WebhookHandler struct {
	usecase usecase.INotificationUseCase
	log     *zap.Logger
}

func NewWebhookHandler(uc usecase.INotificationUseCase, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{usecase: uc, log: logger.Named(log, "webhook_handler")}
}

// ProviderA godoc
// @Summary      QRIS deposit callback
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Forest-Signature  header    string  false  "hex HMAC-SHA256 of the body"
// @Success      200                 {object}  response.WebhookResponse
// @Failure      400                 {object}  pkg.HTTPError
// @Failure      403                 {object}  pkg.HTTPError
// @Failure      404                 {object}  pkg.HTTPError
// @Failure      500                 {object}  pkg.HTTPError
// @Router       /webhook/payment-provider-a [post]
func (h *WebhookHandler) ProviderA(c *gin.Context) {
	h.handle(c, entities.PaymentProviderForestAPI)
}

// ProviderB godoc
// @Summary      Snap payment notification
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /webhook/payment-provider-b [post]
func (h *WebhookHandler) ProviderB(c *gin.Context) {
	h.handle(c, entities.PaymentProviderMidtrans)
}

func (h *WebhookHandler) handle(c *gin.Context, provider entities.PaymentProvider) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	res, err := h.usecase.HandleNotification(c.Request.Context(), provider, c.Request.Header, body)
	if err != nil {
		appErr := mapWebhookError(err)
		h.log.Warn("notification failed",
			zap.String("provider", string(provider)),
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.HTTPStatus),
			zap.Error(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.log.Info("notification handled",
		zap.String("provider", string(provider)),
		zap.String("order_id", res.OrderID),
		zap.String("outcome", string(res.Outcome)),
		zap.String("order_status", string(res.Status)))
	c.JSON(http.StatusOK, response.FromNotificationResult(res))
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNotificationUnauthorized):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED_NOTIFICATION", "Notification signature is invalid", http.StatusForbidden)
	case errors.Is(err, usecase.ErrMalformedNotification), errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("MALFORMED_NOTIFICATION", "Notification payload is invalid", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	default:
		return errInternal(err)
	}
}
