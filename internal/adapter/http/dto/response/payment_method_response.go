package response

import (
	"time"

	"workorder_invoicing/internal/domain/entities"
)

type PaymentMethodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromPaymentMethod(pm entities.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        pm.ID,
		Name:      pm.Name,
		Provider:  pm.Provider,
		Active:    pm.Active,
		CreatedAt: pm.CreatedAt,
	}
}

func FromPaymentMethods(pms []entities.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(pms))
	for _, pm := range pms {
		out = append(out, FromPaymentMethod(pm))
	}
	return out
}
