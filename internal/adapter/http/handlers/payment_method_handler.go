package handlers

import (
	"errors"
	"net/http"

	request "workorder_invoicing/internal/adapter/http/dto/request"
	response "workorder_invoicing/internal/adapter/http/dto/response"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

type PaymentMethodHandler struct {
	usecase usecase.IPaymentMethodUseCase
}

func NewPaymentMethodHandler(uc usecase.IPaymentMethodUseCase) *PaymentMethodHandler {
	return &PaymentMethodHandler{usecase: uc}
}

// ListPaymentMethods godoc
// @Summary  List payment methods
// @Tags     payment-methods
// @Produce  json
// @Success  200  {array}  response.PaymentMethodResponse
// @Router   /payment-methods [get]
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	pms, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapPaymentMethodError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentMethods(pms))
}

// CreatePaymentMethod godoc
// @Summary  Register a payment method
// @Tags     payment-methods
// @Accept   json
// @Produce  json
// @Param    body  body      request.PaymentMethodRequest  true  "Payment method"
// @Success  201   {object}  response.PaymentMethodResponse
// @Failure  400   {object}  pkg.HTTPError
// @Router   /payment-methods [post]
func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	var payload request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}
	created, err := h.usecase.Create(c.Request.Context(), payload.ToNewPaymentMethod())
	if err != nil {
		respondError(c, mapPaymentMethodError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentMethod(created))
}

// GetPaymentMethod godoc
// @Summary  Get a payment method
// @Tags     payment-methods
// @Produce  json
// @Param    id   path      string  true  "Payment method id"
// @Success  200  {object}  response.PaymentMethodResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetPaymentMethod(c *gin.Context) {
	pm, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapPaymentMethodError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentMethod(pm))
}

func mapPaymentMethodError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentMethodID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentMethodNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_METHOD_NOT_FOUND", "Payment method not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
