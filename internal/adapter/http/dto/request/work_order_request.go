package request

import (
	"strings"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"

	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	RefType     string          `json:"ref_type" binding:"required,oneof=service bundle"`
	RefID       string          `json:"ref_id" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Notes       string          `json:"notes"`
}

// CreateWorkOrderRequest opens a work order at the review stage; the invoice number
// is allocated on creation.
type CreateWorkOrderRequest struct {
	CustomerID    string            `json:"customer_id" binding:"required"`
	VehicleID     string            `json:"vehicle_id" binding:"required"`
	CustomerClass string            `json:"customer_class" binding:"required,customer_class"`
	LineItems     []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	Notes         string            `json:"notes"`
}

func (r CreateWorkOrderRequest) ToNewWorkOrder() usecase.NewWorkOrder {
	items := make([]entities.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, entities.LineItem{
			RefType:     entities.LineItemRefType(li.RefType),
			RefID:       strings.TrimSpace(li.RefID),
			Description: strings.TrimSpace(li.Description),
			Price:       li.Price,
			Notes:       strings.TrimSpace(li.Notes),
		})
	}
	return usecase.NewWorkOrder{
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		CustomerClass: entities.CustomerClass(strings.ToLower(strings.TrimSpace(r.CustomerClass))),
		LineItems:     items,
		Notes:         r.Notes,
	}
}

// CancelWorkOrderRequest may name the canceled status; empty uses the ledger's.
type CancelWorkOrderRequest struct {
	Status string `json:"status"`
}

type IssueInvoiceRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Notes           string `json:"notes"`
}
