package interfaces

import (
	"context"
	"time"

	"workorder_invoicing/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice. Invoices are append-only.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByWorkOrderID(ctx context.Context, workOrderID string) (entities.Invoice, error)
}

// IAtomicInvoiceIssuer is implemented by stores that can create the invoice and
// complete its work order in one all-or-nothing write.
type IAtomicInvoiceIssuer interface {
	IssueAtomically(ctx context.Context, inv entities.Invoice, completedAt time.Time) error
}
