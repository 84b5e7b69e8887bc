package response

import (
	"encoding/json"
	"testing"
	"time"

	"workorder_invoicing/internal/domain/entities"
)

func TestFromBillingPayment(t *testing.T) {
	now := time.Now().UTC()
	raw := json.RawMessage(`{"id":123}`)

	t.Run("approved payment", func(t *testing.T) {
		res := FromBillingPayment(entities.BillingPayment{
			ID:           "pay-1",
			InvoiceID:    "inv-1",
			Date:         now,
			Status:       entities.PaymentStatusApproved,
			MPPayloadRaw: raw,
			MPPayload:    map[string]interface{}{"a": "b"},
		})
		if res.ID != "pay-1" || res.InvoiceID != "inv-1" {
			t.Fatalf("unexpected ids: %+v", res)
		}
		if res.Status != "approved" || !res.Approved {
			t.Fatalf("unexpected status: %+v", res)
		}
		if !res.Date.Equal(now) {
			t.Fatalf("unexpected date: %+v", res)
		}
		if res.MPPayloadRaw != string(raw) || res.MPPayload["a"] != "b" {
			t.Fatalf("unexpected payload: %+v", res)
		}
	})

	t.Run("pending payment is not approved", func(t *testing.T) {
		res := FromBillingPayment(entities.BillingPayment{ID: "pay-2", Status: entities.PaymentStatusPending})
		if res.Approved || res.Status != "pending" {
			t.Fatalf("unexpected status: %+v", res)
		}
		if res.MPPayloadRaw != "" {
			t.Fatalf("expected empty raw payload, got %q", res.MPPayloadRaw)
		}
	})
}
