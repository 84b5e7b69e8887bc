package request

import (
	"strings"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"
)

// StatusRequest accepts either an explicit kind or the two legacy flags.
// Setting both flags is rejected by StatusKindFromFlags; flags sent next to a kind must
// agree with it.
type StatusRequest struct {
	Name             string `json:"name" binding:"required"`
	Order            int    `json:"order" binding:"gte=0"`
	Kind             string `json:"kind" binding:"omitempty,oneof=normal end canceled"`
	IsEndStatus      bool   `json:"is_end_status"`
	IsCanceledStatus bool   `json:"is_canceled_status"`
	Color            string `json:"color"`
}

func (r StatusRequest) ToInput() (usecase.StatusInput, error) {
	fromFlags, err := entities.StatusKindFromFlags(r.IsEndStatus, r.IsCanceledStatus)
	if err != nil {
		return usecase.StatusInput{}, err
	}
	kind := entities.StatusKind(strings.TrimSpace(r.Kind))
	switch {
	case kind == "":
		kind = fromFlags
	case (r.IsEndStatus || r.IsCanceledStatus) && kind != fromFlags:
		return usecase.StatusInput{}, &usecase.ValidationError{
			Field:  "kind",
			Reason: "kind " + string(kind) + " contradicts is_end_status/is_canceled_status",
		}
	}
	return usecase.StatusInput{
		Name:  r.Name,
		Order: r.Order,
		Kind:  kind,
		Color: strings.TrimSpace(r.Color),
	}, nil
}
