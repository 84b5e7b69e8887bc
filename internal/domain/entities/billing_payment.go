package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus is the settlement outcome reported by the payment provider.

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentStatusFromProvider maps a Mercado Pago status onto ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusDenied
	}
	return PaymentStatusPending
}

// BillingPayment settles an issued invoice through a payment provider.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (invoice_id-index): invoice_id
//
// The provider payload is kept both raw and parsed for traceability.

type BillingPayment struct {
	ID        string        `json:"id"`
	InvoiceID string        `json:"invoice_id"`
	Date      time.Time     `json:"date"`
	Status    PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
