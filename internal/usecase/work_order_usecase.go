package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrWorkOrderNotFound    = errors.New("work order not found")
	ErrInvalidWorkOrderID   = errors.New("invalid work order id")
	ErrWorkOrderHasNoNumber = errors.New("work order has no invoice number")
)

// NewWorkOrder is the input of WorkOrderUseCase.Create.
type NewWorkOrder struct {
	CustomerID    string
	VehicleID     string
	CustomerClass entities.CustomerClass
	LineItems     []entities.LineItem
	Notes         string
}

// IWorkOrderUseCase exposes the work order operations of the service shop.
//
//   - Create runs at the review stage: the invoice number is allocated before the first write
//     and an allocation failure aborts the creation.
//   - Cancel sets a canceled-kind ledger status and the is_canceled flag; nothing is deleted.

type IWorkOrderUseCase interface {
	Create(ctx context.Context, in NewWorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	ListActive(ctx context.Context, filter entities.DashboardFilter) ([]entities.WorkOrder, error)
	Cancel(ctx context.Context, id string, statusName string) (entities.WorkOrder, error)
	Archive(ctx context.Context, id string) (entities.WorkOrder, error)
}

type WorkOrderUseCase struct {
	repo      interfaces.IWorkOrderRepository
	allocator ISequenceAllocator
	ledger    IStatusLedgerUseCase
	publisher interfaces.IEventPublisher
	now       func() time.Time
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(repo interfaces.IWorkOrderRepository, allocator ISequenceAllocator, ledger IStatusLedgerUseCase, publisher interfaces.IEventPublisher) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, allocator: allocator, ledger: ledger, publisher: publisher, now: utcNow}
}

func (u *WorkOrderUseCase) Create(ctx context.Context, in NewWorkOrder) (entities.WorkOrder, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.CustomerID == "" {
		return entities.WorkOrder{}, newValidationError("customer_id", "required")
	}
	if in.VehicleID == "" {
		return entities.WorkOrder{}, newValidationError("vehicle_id", "required")
	}
	if !in.CustomerClass.Valid() {
		return entities.WorkOrder{}, newValidationError("customer_class", "must be corporate or individual")
	}
	for _, it := range in.LineItems {
		if it.Price.IsNegative() {
			return entities.WorkOrder{}, newValidationError("line_items.price", "must not be negative")
		}
	}

	ledger, err := u.ledger.Ledger(ctx)
	if err != nil {
		log.Printf("[work-order][usecase] ledger load failed err=%v", err)
		return entities.WorkOrder{}, err
	}

	number, err := u.allocator.Allocate(ctx, in.CustomerClass)
	if err != nil {
		log.Printf("[work-order][usecase] creation aborted; allocation failed class=%s err=%v", in.CustomerClass, err)
		return entities.WorkOrder{}, err
	}

	now := u.now()
	w := entities.WorkOrder{
		ID:            uuid.NewString(),
		CustomerID:    in.CustomerID,
		VehicleID:     in.VehicleID,
		CustomerClass: in.CustomerClass,
		InvoiceNumber: number,
		Status:        ledger.Initial(),
		LineItems:     in.LineItems,
		Total:         entities.SumLineItems(in.LineItems),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if w.LineItems == nil {
		w.LineItems = []entities.LineItem{}
	}

	created, err := u.repo.Create(ctx, w)
	if err != nil {
		log.Printf("[work-order][usecase] create failed invoice_number=%s err=%v", number, err)
		return entities.WorkOrder{}, err
	}
	log.Printf("[work-order][usecase] created id=%s class=%s invoice_number=%s status=%q total=%s",
		created.ID, created.CustomerClass, created.InvoiceNumber, created.Status, created.Total.StringFixed(2))
	publishEvent(ctx, u.publisher, entities.EventWorkOrderCreated, created.ID, workOrderPayload(created, ""))
	return created, nil
}

func (u *WorkOrderUseCase) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}

	w, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if w.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return w, nil
}

// ListActive returns the dashboard view, newest first.
func (u *WorkOrderUseCase) ListActive(ctx context.Context, filter entities.DashboardFilter) ([]entities.WorkOrder, error) {
	all, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveWorkOrders(all, filter), nil
}

// ActiveWorkOrders applies filter and sorts by created_at descending.
func ActiveWorkOrders(all []entities.WorkOrder, filter entities.DashboardFilter) []entities.WorkOrder {
	out := make([]entities.WorkOrder, 0, len(all))
	for _, w := range all {
		if filter.Matches(w) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (u *WorkOrderUseCase) Cancel(ctx context.Context, id string, statusName string) (entities.WorkOrder, error) {
	w, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if w.IsCompleted() {
		return entities.WorkOrder{}, ErrWorkOrderTerminal
	}

	ledger, err := u.ledger.Ledger(ctx)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	statusName = strings.TrimSpace(statusName)
	if statusName == "" {
		canceled, ok := ledger.CanceledStatus()
		if !ok {
			return entities.WorkOrder{}, newValidationError("status", "ledger has no canceled status")
		}
		statusName = canceled.Name
	} else if s, ok := ledger.Find(statusName); !ok || !s.IsCanceled() {
		return entities.WorkOrder{}, newValidationError("status", "not a canceled status: "+statusName)
	}

	updated, err := u.repo.MarkCanceled(ctx, w.ID, statusName)
	if err != nil {
		log.Printf("[work-order][usecase] cancel failed id=%s err=%v", w.ID, err)
		return entities.WorkOrder{}, err
	}
	if updated.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	log.Printf("[work-order][usecase] canceled id=%s status=%q", updated.ID, updated.Status)
	publishEvent(ctx, u.publisher, entities.EventWorkOrderCanceled, updated.ID, workOrderPayload(updated, w.Status))
	return updated, nil
}

func (u *WorkOrderUseCase) Archive(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}

	updated, err := u.repo.MarkArchived(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if updated.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	publishEvent(ctx, u.publisher, entities.EventWorkOrderArchived, updated.ID, workOrderPayload(updated, ""))
	return updated, nil
}
