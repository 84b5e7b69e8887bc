package response

import (
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"
)

type LineItemResponse struct {
	RefType     string `json:"ref_type"`
	RefID       string `json:"ref_id"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Notes       string `json:"notes,omitempty"`
}

type WorkOrderResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	VehicleID     string             `json:"vehicle_id"`
	CustomerClass string             `json:"customer_class"`
	InvoiceNumber string             `json:"invoice_number"`
	Status        string             `json:"status"`
	IsArchived    bool               `json:"is_archived"`
	IsCanceled    bool               `json:"is_canceled"`
	LineItems     []LineItemResponse `json:"line_items"`
	Total         string             `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, LineItemResponse{
			RefType:     string(li.RefType),
			RefID:       li.RefID,
			Description: li.Description,
			Price:       li.Price.StringFixed(2),
			Notes:       li.Notes,
		})
	}
	return out
}

func FromWorkOrder(w entities.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:            w.ID,
		CustomerID:    w.CustomerID,
		VehicleID:     w.VehicleID,
		CustomerClass: string(w.CustomerClass),
		InvoiceNumber: w.InvoiceNumber,
		Status:        w.Status,
		IsArchived:    w.IsArchived,
		IsCanceled:    w.IsCanceled,
		LineItems:     fromLineItems(w.LineItems),
		Total:         w.Total.StringFixed(2),
		Notes:         w.Notes,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		CompletedAt:   w.CompletedAt,
	}
}

func FromWorkOrders(ws []entities.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWorkOrder(w))
	}
	return out
}

// TransitionResponse reports an advance. When InvoiceReviewRequired is true the work
// order was not written: the next step is issuing its invoice.
type TransitionResponse struct {
	WorkOrder             WorkOrderResponse `json:"work_order"`
	From                  string            `json:"from"`
	Target                string            `json:"target"`
	InvoiceReviewRequired bool              `json:"invoice_review_required"`
}

func FromTransition(r usecase.TransitionResult) TransitionResponse {
	return TransitionResponse{
		WorkOrder:             FromWorkOrder(r.WorkOrder),
		From:                  r.From,
		Target:                r.Target.Name,
		InvoiceReviewRequired: r.InvoiceReviewRequired,
	}
}
