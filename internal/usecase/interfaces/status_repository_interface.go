package interfaces

import (
	"context"

	"workorder_invoicing/internal/domain/entities"
)

// IStatusRepository abstracts persistence of the lifecycle ledger.
// The store enforces neither name uniqueness nor the single-end rule.

type IStatusRepository interface {
	List(ctx context.Context) ([]entities.StatusDefinition, error)
	GetByID(ctx context.Context, id string) (entities.StatusDefinition, error)
	Create(ctx context.Context, s entities.StatusDefinition) (entities.StatusDefinition, error)
	Update(ctx context.Context, s entities.StatusDefinition) (entities.StatusDefinition, error)
}
