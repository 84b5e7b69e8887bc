package handlers

import (
	"errors"
	"net/http"

	response "workorder_invoicing/internal/adapter/http/dto/response"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// GetInvoice godoc
// @Summary  Get an invoice
// @Tags     invoices
// @Produce  json
// @Param    id   path      string  true  "Invoice id"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetInvoiceByWorkOrder godoc
// @Summary  Get the invoice of a work order
// @Tags     invoices
// @Produce  json
// @Param    work_order_id  path      string  true  "Work order id"
// @Success  200            {object}  response.InvoiceResponse
// @Failure  404            {object}  pkg.HTTPError
// @Router   /invoices/by-work-order/{work_order_id} [get]
func (h *InvoiceHandler) GetInvoiceByWorkOrder(c *gin.Context) {
	inv, err := h.usecase.GetByWorkOrderID(c.Request.Context(), c.Param("work_order_id"))
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func mapInvoiceError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidWorkOrderID), errors.Is(err, usecase.ErrInvalidPaymentMethodID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentMethodNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_METHOD_NOT_FOUND", "Payment method not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvoiceAlreadyIssued):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_ISSUED", "Invoice already issued for this work order", http.StatusConflict)
	case errors.Is(err, usecase.ErrIssueInProgress):
		return pkg.NewDomainErrorSimple("INVOICE_ISSUE_IN_PROGRESS", "Invoice issuance already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotReadyForInvoice):
		return pkg.NewDomainErrorSimple("NOT_READY_FOR_INVOICE", "Work order has not reached the invoice review step", http.StatusConflict)
	case errors.Is(err, usecase.ErrWorkOrderTerminal):
		return pkg.NewDomainErrorSimple("WORK_ORDER_TERMINAL", "Work order is completed or canceled", http.StatusConflict)
	case errors.Is(err, usecase.ErrWorkOrderHasNoNumber):
		return pkg.NewDomainErrorSimple("WORK_ORDER_WITHOUT_NUMBER", "Work order has no invoice number", http.StatusConflict)
	default:
		return internalError(err)
	}
}
