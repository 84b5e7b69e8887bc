package entities

import (
	"encoding/json"
	"time"
)

const (
	EventWorkOrderCreated        = "work_order.created"
	EventWorkOrderStatusAdvanced = "work_order.status_advanced"
	EventWorkOrderCanceled       = "work_order.canceled"
	EventWorkOrderArchived       = "work_order.archived"
	EventInvoiceIssued           = "invoice.issued"
	EventInvoiceCounterResynced  = "counter.resynced"
	EventStatusLedgerChanged     = "status_ledger.changed"
)

// LifecycleEvent is the envelope published on every change to work orders, invoices,
// counters or the ledger. Key is the partition key (work order id, class or status id).
type LifecycleEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Version    int             `json:"event_version"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
}

type WorkOrderEventPayload struct {
	WorkOrderID   string        `json:"work_order_id"`
	CustomerClass CustomerClass `json:"customer_class"`
	InvoiceNumber string        `json:"invoice_number"`
	FromStatus    string        `json:"from_status,omitempty"`
	Status        string        `json:"status"`
}

type InvoiceIssuedPayload struct {
	InvoiceID       string        `json:"invoice_id"`
	WorkOrderID     string        `json:"work_order_id"`
	CustomerClass   CustomerClass `json:"customer_class"`
	InvoiceNumber   string        `json:"invoice_number"`
	Total           string        `json:"total"`
	PaymentMethodID string        `json:"payment_method_id"`
}

type CounterResyncedPayload struct {
	CustomerClass CustomerClass `json:"customer_class"`
	Previous      int           `json:"previous"`
	LastValue     int           `json:"last_value"`
}
