package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the immutable copy of a work order taken when it is invoiced.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (work_order_id-index): work_order_id
type Invoice struct {
	ID              string          `json:"id"`
	WorkOrderID     string          `json:"work_order_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerClass   CustomerClass   `json:"customer_class"`
	CustomerID      string          `json:"customer_id"`
	VehicleID       string          `json:"vehicle_id"`
	LineItems       []LineItem      `json:"line_items"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethodID string          `json:"payment_method_id"`
	Notes           string          `json:"notes,omitempty"`
	IssuedAt        time.Time       `json:"issued_at"`
}

// NewInvoiceFromWorkOrder snapshots w. Line items are copied so later edits to the
// work order slice cannot leak into the invoice.
func NewInvoiceFromWorkOrder(id string, w WorkOrder, paymentMethodID, notes string, issuedAt time.Time) Invoice {
	items := make([]LineItem, len(w.LineItems))
	copy(items, w.LineItems)
	return Invoice{
		ID:              id,
		WorkOrderID:     w.ID,
		InvoiceNumber:   w.InvoiceNumber,
		CustomerClass:   w.CustomerClass,
		CustomerID:      w.CustomerID,
		VehicleID:       w.VehicleID,
		LineItems:       items,
		Total:           w.Total,
		PaymentMethodID: paymentMethodID,
		Notes:           notes,
		IssuedAt:        issuedAt,
	}
}

// PaymentMethod is how the customer settles an invoice (cash, card, Mercado Pago, ...).
type PaymentMethod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceCounter caches the last number used per class.
//
// It is a display aid: allocation in the default mode reads the work orders themselves.
// Storage model (DynamoDB):
//   - PK: customer_class
type InvoiceCounter struct {
	CustomerClass CustomerClass `json:"customer_class"`
	LastValue     int           `json:"last_value"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
