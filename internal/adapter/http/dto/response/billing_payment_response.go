package response

import (
	"time"

	"workorder_invoicing/internal/domain/entities"
)

type BillingPaymentResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Approved  bool      `json:"approved"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		Date:         p.Date,
		Status:       string(p.Status),
		Approved:     p.Status == entities.PaymentStatusApproved,
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}
