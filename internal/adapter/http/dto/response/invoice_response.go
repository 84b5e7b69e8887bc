package response

import (
	"time"

	"workorder_invoicing/internal/domain/entities"
)

type InvoiceResponse struct {
	ID              string             `json:"id"`
	WorkOrderID     string             `json:"work_order_id"`
	InvoiceNumber   string             `json:"invoice_number"`
	CustomerClass   string             `json:"customer_class"`
	CustomerID      string             `json:"customer_id"`
	VehicleID       string             `json:"vehicle_id"`
	LineItems       []LineItemResponse `json:"line_items"`
	Total           string             `json:"total"`
	PaymentMethodID string             `json:"payment_method_id"`
	Notes           string             `json:"notes,omitempty"`
	IssuedAt        time.Time          `json:"issued_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		WorkOrderID:     inv.WorkOrderID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerClass:   string(inv.CustomerClass),
		CustomerID:      inv.CustomerID,
		VehicleID:       inv.VehicleID,
		LineItems:       fromLineItems(inv.LineItems),
		Total:           inv.Total.StringFixed(2),
		PaymentMethodID: inv.PaymentMethodID,
		Notes:           inv.Notes,
		IssuedAt:        inv.IssuedAt,
	}
}
