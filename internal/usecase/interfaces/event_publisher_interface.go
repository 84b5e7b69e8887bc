package interfaces

import (
	"context"

	"workorder_invoicing/internal/domain/entities"
)

// IEventPublisher fans lifecycle events out to subscribers (Kafka, live dashboards).
// Publishing is best effort: callers log failures and never roll back on them.
type IEventPublisher interface {
	Publish(ctx context.Context, evt entities.LifecycleEvent) error
}

// IIssueGuard serializes invoice issuance per work order across API replicas.
type IIssueGuard interface {
	Acquire(ctx context.Context, workOrderID string) (bool, error)
	Release(ctx context.Context, workOrderID string) error
}
