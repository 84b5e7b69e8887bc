package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderStatusCompleted is written when the invoice is issued. It is a fixed literal,
// not the name of the ledger's end status.
const WorkOrderStatusCompleted = "completed"

type LineItemRefType string

const (
	LineItemRefService LineItemRefType = "service"
	LineItemRefBundle  LineItemRefType = "bundle"
)

// LineItem references a catalog service or bundle, priced at the moment it was added.
type LineItem struct {
	RefType     LineItemRefType `json:"ref_type"`
	RefID       string          `json:"ref_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Notes       string          `json:"notes,omitempty"`
}

// WorkOrder is a service-shop job (ordem de serviço) moving through the status ledger.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (customer_class-created_at-index): customer_class + created_at
//
// Numbering:
//   - InvoiceNumber is assigned once, at the review stage, before the first write.
//   - Two work orders may end up with the same number (allocation race); the audit reports it.
type WorkOrder struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	VehicleID     string          `json:"vehicle_id"`
	CustomerClass CustomerClass   `json:"customer_class"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
	IsArchived    bool            `json:"is_archived"`
	IsCanceled    bool            `json:"is_canceled"`
	LineItems     []LineItem      `json:"line_items"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func (w WorkOrder) IsCompleted() bool { return w.Status == WorkOrderStatusCompleted }

// SumLineItems totals the line item prices.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}

// DashboardFilter selects work orders for the active dashboard.
// Empty fields match everything.
type DashboardFilter struct {
	CustomerClass CustomerClass
	Status        string
	Search        string
}

// Matches never accepts archived or canceled work orders, whatever the other criteria.
func (f DashboardFilter) Matches(w WorkOrder) bool {
	if w.IsArchived || w.IsCanceled {
		return false
	}
	if f.CustomerClass != "" && w.CustomerClass != f.CustomerClass {
		return false
	}
	if f.Status != "" && w.Status != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.ToLower(w.InvoiceNumber + " " + w.CustomerID + " " + w.VehicleID + " " + w.Notes)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}
