package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "amat_hosting/internal/adapter/http/dto/request"
	response "amat_hosting/internal/adapter/http/dto/response"
	"amat_hosting/internal/logger"
	"amat_hosting/internal/usecase"
	"amat_hosting/pkg"
)

// OrderHandler serves checkout and the polling endpoints.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
	log     *zap.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, log: logger.Named(log, "order_handler")}
}

// Checkout godoc
// @Summary      Price-check an order and open its payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.CheckoutRequest  true  "Price quote"
// @Success      200   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /order/price-quote-and-deposit [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Unsupported payment method", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.Checkout(c.Request.Context(), in)
	if err != nil {
		appErr := mapOrderError(err)
		h.logFailure("checkout failed", appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCheckout(res))
}

// GetDepositDetails godoc
// @Summary      Stored payment presentation data for an order
// @Tags         orders
// @Produce      json
// @Param        order_id    query     string  true  "Order id"
// @Param        deposit_id  query     string  true  "Deposit reference"
// @Success      200         {object}  response.DepositDetailsResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /order/deposit-details [get]
func (h *OrderHandler) GetDepositDetails(c *gin.Context) {
	o, err := h.usecase.GetDepositDetails(c.Request.Context(), c.Query("order_id"), c.Query("deposit_id"))
	if err != nil {
		appErr := mapOrderError(err)
		h.logFailure("deposit details failed", appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDepositDetails(o))
}

// GetDepositStatus godoc
// @Summary      Advisory provider status of a deposit
// @Tags         orders
// @Produce      json
// @Param        deposit_id  query     string  true  "Deposit reference"
// @Success      200         {object}  response.DepositStatusResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      500         {object}  pkg.HTTPError
// @Router       /order/status [get]
func (h *OrderHandler) GetDepositStatus(c *gin.Context) {
	v, err := h.usecase.GetDepositStatus(c.Request.Context(), c.Query("deposit_id"))
	if err != nil {
		appErr := mapOrderError(err)
		h.logFailure("deposit status failed", appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDepositStatus(v))
}

// GetServerDetails godoc
// @Summary      Provisioned server of an order
// @Tags         orders
// @Produce      json
// @Param        order_id  query     string  true  "Order id"
// @Success      200       {object}  response.ServerDetailsResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Router       /order/server-details [get]
func (h *OrderHandler) GetServerDetails(c *gin.Context) {
	v, err := h.usecase.GetServerDetails(c.Request.Context(), c.Query("order_id"))
	if err != nil {
		appErr := mapOrderError(err)
		h.logFailure("server details failed", appErr)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServerDetails(v))
}

func (h *OrderHandler) logFailure(msg string, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error(msg, zap.String("code", appErr.Code), zap.Error(appErr.Err))
		return
	}
	h.log.Info(msg, zap.String("code", appErr.Code))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPackage):
		return pkg.NewDomainError("INVALID_PACKAGE", "Invalid package", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPriceMismatch):
		return pkg.NewDomainError("PRICE_MISMATCH", "Invalid price or tampering detected. Please try again.", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPromoNotFound):
		return pkg.NewDomainError("PROMO_NOT_FOUND", "Promo code not found, inactive or expired", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPromoExhausted):
		return pkg.NewDomainError("PROMO_EXHAUSTED", "Promo code usage limit reached", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainError("ORDER_NOT_FOUND", "Order or deposit not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrUpstreamGateway):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider request failed", err, http.StatusInternalServerError)
	default:
		return errInternal(err)
	}
}
