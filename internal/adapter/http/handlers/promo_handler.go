package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "amat_hosting/internal/adapter/http/dto/request"
	response "amat_hosting/internal/adapter/http/dto/response"
	"amat_hosting/internal/usecase"
	"amat_hosting/pkg"
)

type PromoHandler struct {
	usecase usecase.IPromoUseCase
}

func NewPromoHandler(uc usecase.IPromoUseCase) *PromoHandler {
	return &PromoHandler{usecase: uc}
}

// Validate godoc
// @Summary      Check a promo code against a package
// @Tags         promo
// @Accept       json
// @Produce      json
// @Param        body  body      request.PromoValidateRequest  true  "Promo code and package"
// @Success      200   {object}  response.PromoValidateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Router       /promo/validate [post]
func (h *PromoHandler) Validate(c *gin.Context) {
	var payload request.PromoValidateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	q, err := h.usecase.Validate(c.Request.Context(), payload.PromoCode, payload.PackageID)
	if err != nil {
		appErr := mapPromoError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPromoQuote(q))
}

func mapPromoError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPackage):
		return pkg.NewDomainErrorSimple("INVALID_PACKAGE", "Invalid package", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPromoNotFound):
		return pkg.NewDomainErrorSimple("PROMO_NOT_FOUND", "Promo code not found, inactive or expired", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPromoExhausted):
		return pkg.NewDomainErrorSimple("PROMO_EXHAUSTED", "Promo code usage limit reached", http.StatusBadRequest)
	default:
		return errInternal(err)
	}
}
