package interfaces

import (
	"context"

	"workorder_invoicing/internal/domain/entities"
)

// ICounterRepository persists the per-class InvoiceCounter document.
//
//   - Set overwrites the document (resync).
//   - Increment is a single atomic read-increment-write, used only by the atomic allocation mode.

type ICounterRepository interface {
	Get(ctx context.Context, class entities.CustomerClass) (entities.InvoiceCounter, bool, error)
	Set(ctx context.Context, class entities.CustomerClass, lastValue int) (entities.InvoiceCounter, error)
	Increment(ctx context.Context, class entities.CustomerClass) (int, error)
}
