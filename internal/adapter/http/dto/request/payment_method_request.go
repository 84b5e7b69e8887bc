package request

import "workorder_invoicing/internal/usecase"

type PaymentMethodRequest struct {
	Name     string `json:"name" binding:"required"`
	Provider string `json:"provider"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

func (r PaymentMethodRequest) ToNewPaymentMethod() usecase.NewPaymentMethod {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return usecase.NewPaymentMethod{Name: r.Name, Provider: r.Provider, Active: active}
}
