package routes

import (
	"workorder_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices       = "/invoices"
	PathPaymentMethods = "/payment-methods"
	PathPayments       = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler, methodHandler *handlers.PaymentMethodHandler, paymentHandler *handlers.BillingPaymentHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.GET("/by-work-order/:work_order_id", invoiceHandler.GetInvoiceByWorkOrder)
	}

	methods := rg.Group(PathPaymentMethods)
	{
		methods.GET("", methodHandler.ListPaymentMethods)
		methods.POST("", methodHandler.CreatePaymentMethod)
		methods.GET("/:id", methodHandler.GetPaymentMethod)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:invoice_id", paymentHandler.CreatePaymentByInvoiceID)
		payments.GET("/:invoice_id", paymentHandler.GetPaymentByInvoiceID)
	}
}
