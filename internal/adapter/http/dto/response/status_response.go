package response

import "workorder_invoicing/internal/domain/entities"

// StatusResponse also carries the boolean flags older clients read.
type StatusResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Order            int    `json:"order"`
	Kind             string `json:"kind"`
	IsEndStatus      bool   `json:"is_end_status"`
	IsCanceledStatus bool   `json:"is_canceled_status"`
	Color            string `json:"color,omitempty"`
}

func FromStatus(s entities.StatusDefinition) StatusResponse {
	return StatusResponse{
		ID:               s.ID,
		Name:             s.Name,
		Order:            s.Order,
		Kind:             string(s.Kind),
		IsEndStatus:      s.IsEnd(),
		IsCanceledStatus: s.IsCanceled(),
		Color:            s.Color,
	}
}

func FromLedger(l entities.StatusLedger) []StatusResponse {
	out := make([]StatusResponse, 0, len(l))
	for _, s := range l.Sorted() {
		out = append(out, FromStatus(s))
	}
	return out
}

type NextStatusResponse struct {
	Current string          `json:"current"`
	Next    *StatusResponse `json:"next"`
}

func FromNextStatus(current string, next entities.StatusDefinition, ok bool) NextStatusResponse {
	res := NextStatusResponse{Current: current}
	if ok {
		s := FromStatus(next)
		res.Next = &s
	}
	return res
}
