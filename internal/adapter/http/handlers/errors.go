package handlers

import (
	"context"
	"errors"
	"net/http"

	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapCommonError covers the typed errors every use case may return.
func mapCommonError(err error) (*pkg.AppError, bool) {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		appErr := pkg.NewDomainError("VALIDATION_FAILED", ve.Reason, err, http.StatusUnprocessableEntity)
		if ve.Field != "" {
			appErr = appErr.WithDetail("field", ve.Field)
		}
		return appErr, true
	}

	var ae *usecase.AllocationError
	if errors.As(err, &ae) {
		return pkg.NewDomainError("ALLOCATION_FAILED", "Invoice number could not be allocated", err, http.StatusServiceUnavailable).
			WithDetail("customer_class", string(ae.CustomerClass)), true
	}

	var me *usecase.MaterializationError
	if errors.As(err, &me) {
		code := "INVOICE_ISSUE_FAILED"
		switch me.Stage {
		case usecase.StageInvoiceCreate:
			code = "INVOICE_CREATE_FAILED"
		case usecase.StageWorkOrderCompletion:
			code = "WORK_ORDER_COMPLETION_FAILED"
		}
		appErr := pkg.NewDomainError(code, "Invoice issuance failed", err, http.StatusInternalServerError).
			WithDetail("work_order_id", me.WorkOrderID)
		if me.Inconsistent() {
			appErr = appErr.WithDetail("invoice_id", me.InvoiceID)
		}
		return appErr, true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return pkg.NewDomainError("TIMEOUT", "The request timed out", err, http.StatusGatewayTimeout), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
