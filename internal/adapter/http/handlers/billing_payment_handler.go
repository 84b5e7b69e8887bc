package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	response "workorder_invoicing/internal/adapter/http/dto/response"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

// BillingPaymentHandler settles issued invoices through the payment gateway.

type BillingPaymentHandler struct {
	usecase  usecase.IBillingPaymentUseCase
	mockMode bool
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, mockMode bool) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, mockMode: mockMode}
}

// CreatePaymentByInvoiceID godoc
// @Summary      Pay an invoice
// @Description  Creates and approves a payment for the invoice. The amount always comes from the invoice total.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                               true  "Invoice id"
// @Param        body        body      request.BillingPaymentCreateRequest  true  "Mercado Pago payload"
// @Success      200         {object}  response.BillingPaymentResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{invoice_id} [post]
func (h *BillingPaymentHandler) CreatePaymentByInvoiceID(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	log.Printf("[payment][handler] create start invoice_id=%s", invoiceID)
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if h.mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload invoice_id=%s err=%v", invoiceID, err)
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload invoice_id=%s err=%v", invoiceID, err)
			respondError(c, errInvalidRequest)
			return
		}
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), invoiceID, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] create failed invoice_id=%s err=%v", invoiceID, err)
		respondError(c, mapBillingPaymentError(err))
		return
	}
	log.Printf("[payment][handler] create success invoice_id=%s payment_id=%s status=%s", invoiceID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromBillingPayment(created))
}

// GetPaymentByInvoiceID godoc
// @Summary  Latest payment of an invoice
// @Tags     payments
// @Produce  json
// @Param    invoice_id  path      string  true  "Invoice id"
// @Success  200         {object}  response.BillingPaymentResponse
// @Failure  404         {object}  pkg.HTTPError
// @Router   /payments/{invoice_id} [get]
func (h *BillingPaymentHandler) GetPaymentByInvoiceID(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	payments, err := h.usecase.ListByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		log.Printf("[payment][handler] get-by-invoice failed invoice_id=%s err=%v", invoiceID, err)
		respondError(c, mapBillingPaymentError(err))
		return
	}
	if len(payments) == 0 {
		respondError(c, pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound))
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(latest))
}

// readMPPayload accepts either the raw provider payload or {"mp_payload": {...}}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentInvoiceID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
