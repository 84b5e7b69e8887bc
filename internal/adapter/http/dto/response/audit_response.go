package response

import (
	"sort"
	"time"

	"workorder_invoicing/internal/domain/entities"
)

type AuditResponse struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Consistent  bool                  `json:"consistent"`
	Classes     []entities.ClassAudit `json:"classes"`
}

// FromAuditReport lists the classes in a stable order.
func FromAuditReport(r entities.AuditReport) AuditResponse {
	res := AuditResponse{GeneratedAt: r.GeneratedAt, Consistent: true, Classes: make([]entities.ClassAudit, 0, len(r.PerClass))}
	for _, a := range r.PerClass {
		res.Classes = append(res.Classes, a)
		if !a.Consistent() {
			res.Consistent = false
		}
	}
	sort.Slice(res.Classes, func(i, j int) bool { return res.Classes[i].CustomerClass < res.Classes[j].CustomerClass })
	return res
}

type CounterResponse struct {
	CustomerClass string    `json:"customer_class"`
	LastValue     int       `json:"last_value"`
	LastNumber    string    `json:"last_invoice_number,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromCounter(c entities.InvoiceCounter) CounterResponse {
	res := CounterResponse{CustomerClass: string(c.CustomerClass), LastValue: c.LastValue, UpdatedAt: c.UpdatedAt}
	if c.LastValue > 0 {
		res.LastNumber = entities.FormatInvoiceNumber(c.CustomerClass, c.LastValue)
	}
	return res
}
