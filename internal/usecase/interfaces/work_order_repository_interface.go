package interfaces

import (
	"context"
	"time"

	"workorder_invoicing/internal/domain/entities"
)

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// Not-found is signalled by a zero-value WorkOrder (empty ID), never by an error.
//   - FindLatestByCustomerClass is the ordered (created_at desc, limit 1) query used by
//     the allocator; ListByCustomerClass is its unordered fallback scan.
//   - Updates are partial writes; there is no transaction spanning two calls.

type IWorkOrderRepository interface {
	Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	FindLatestByCustomerClass(ctx context.Context, class entities.CustomerClass) (entities.WorkOrder, error)
	ListByCustomerClass(ctx context.Context, class entities.CustomerClass) ([]entities.WorkOrder, error)
	ListAll(ctx context.Context) ([]entities.WorkOrder, error)
	FindByInvoiceNumber(ctx context.Context, class entities.CustomerClass, invoiceNumber string) ([]entities.WorkOrder, error)
	UpdateStatus(ctx context.Context, id string, status string) (entities.WorkOrder, error)
	MarkCanceled(ctx context.Context, id string, status string) (entities.WorkOrder, error)
	MarkArchived(ctx context.Context, id string) (entities.WorkOrder, error)
	Complete(ctx context.Context, id string, completedAt time.Time) (entities.WorkOrder, error)
}
