package request

import "encoding/json"

// BillingPaymentCreateRequest is the payload that settles an issued invoice.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.
// Amount, description and external_reference are always taken from the invoice.

type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
