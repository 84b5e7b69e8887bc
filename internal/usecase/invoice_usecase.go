package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvalidInvoiceID     = errors.New("invalid invoice id")
	ErrInvoiceAlreadyIssued = errors.New("invoice already issued for work order")
	ErrIssueInProgress      = errors.New("invoice issuance already in progress for work order")
	ErrNotReadyForInvoice   = errors.New("work order has not reached the invoice review step")
)

// IInvoiceUseCase converts a work order at the end of the ledger into an immutable invoice.
//
// Issue writes exactly one invoice and completes exactly one work order. Stores that
// implement interfaces.IAtomicInvoiceIssuer do both in one write; otherwise the two writes
// run in sequence and a failure names the stage that broke.

type IInvoiceUseCase interface {
	Issue(ctx context.Context, workOrderID, paymentMethodID, notes string) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByWorkOrderID(ctx context.Context, workOrderID string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	invoices       interfaces.IInvoiceRepository
	workOrders     interfaces.IWorkOrderRepository
	paymentMethods interfaces.IPaymentMethodRepository
	ledger         IStatusLedgerUseCase
	guard          interfaces.IIssueGuard
	publisher      interfaces.IEventPublisher
	now            func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

// NewInvoiceUseCase wires the materializer. guard and publisher may be nil.
func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	workOrders interfaces.IWorkOrderRepository,
	paymentMethods interfaces.IPaymentMethodRepository,
	ledger IStatusLedgerUseCase,
	guard interfaces.IIssueGuard,
	publisher interfaces.IEventPublisher,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:       invoices,
		workOrders:     workOrders,
		paymentMethods: paymentMethods,
		ledger:         ledger,
		guard:          guard,
		publisher:      publisher,
		now:            utcNow,
	}
}

func (u *InvoiceUseCase) Issue(ctx context.Context, workOrderID, paymentMethodID, notes string) (entities.Invoice, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	paymentMethodID = strings.TrimSpace(paymentMethodID)
	if workOrderID == "" {
		return entities.Invoice{}, ErrInvalidWorkOrderID
	}
	log.Printf("[invoice][usecase] issue start work_order_id=%s payment_method_id=%s", workOrderID, paymentMethodID)

	if err := u.checkPaymentMethod(ctx, paymentMethodID); err != nil {
		return entities.Invoice{}, err
	}

	if u.guard != nil {
		acquired, err := u.guard.Acquire(ctx, workOrderID)
		if err != nil {
			log.Printf("[invoice][usecase] issue guard unavailable work_order_id=%s err=%v", workOrderID, err)
			return entities.Invoice{}, err
		}
		if !acquired {
			return entities.Invoice{}, ErrIssueInProgress
		}
		defer func() {
			if err := u.guard.Release(context.WithoutCancel(ctx), workOrderID); err != nil {
				log.Printf("[invoice][usecase] issue guard release failed work_order_id=%s err=%v", workOrderID, err)
			}
		}()
	}

	w, err := u.workOrders.GetByID(ctx, workOrderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if w.ID == "" {
		return entities.Invoice{}, ErrWorkOrderNotFound
	}
	if w.IsCompleted() {
		return entities.Invoice{}, ErrInvoiceAlreadyIssued
	}
	if w.IsCanceled {
		return entities.Invoice{}, ErrWorkOrderTerminal
	}
	if w.InvoiceNumber == "" {
		return entities.Invoice{}, ErrWorkOrderHasNoNumber
	}
	if err := u.checkAtInvoiceReview(ctx, w); err != nil {
		return entities.Invoice{}, err
	}
	if existing, err := u.invoices.GetByWorkOrderID(ctx, w.ID); err != nil {
		return entities.Invoice{}, err
	} else if existing.ID != "" {
		return entities.Invoice{}, ErrInvoiceAlreadyIssued
	}

	now := u.now()
	inv := entities.NewInvoiceFromWorkOrder(uuid.NewString(), w, paymentMethodID, strings.TrimSpace(notes), now)

	if issuer, ok := u.invoices.(interfaces.IAtomicInvoiceIssuer); ok {
		if err := issuer.IssueAtomically(ctx, inv, now); err != nil {
			log.Printf("[invoice][usecase] atomic issue failed work_order_id=%s err=%v", w.ID, err)
			return entities.Invoice{}, &MaterializationError{Stage: StageAtomicIssue, WorkOrderID: w.ID, InvoiceID: inv.ID, Err: err}
		}
	} else if err := u.issueInTwoWrites(ctx, inv, now); err != nil {
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] issued invoice_id=%s work_order_id=%s invoice_number=%s total=%s",
		inv.ID, w.ID, inv.InvoiceNumber, inv.Total.StringFixed(2))
	publishEvent(ctx, u.publisher, entities.EventInvoiceIssued, w.ID, entities.InvoiceIssuedPayload{
		InvoiceID:       inv.ID,
		WorkOrderID:     w.ID,
		CustomerClass:   inv.CustomerClass,
		InvoiceNumber:   inv.InvoiceNumber,
		Total:           inv.Total.StringFixed(2),
		PaymentMethodID: inv.PaymentMethodID,
	})
	return inv, nil
}

func (u *InvoiceUseCase) issueInTwoWrites(ctx context.Context, inv entities.Invoice, completedAt time.Time) error {
	created, err := u.invoices.Create(ctx, inv)
	if err != nil {
		log.Printf("[invoice][usecase] invoice create failed work_order_id=%s err=%v", inv.WorkOrderID, err)
		return &MaterializationError{Stage: StageInvoiceCreate, WorkOrderID: inv.WorkOrderID, Err: err}
	}

	completed, err := u.workOrders.Complete(ctx, inv.WorkOrderID, completedAt)
	if err == nil && completed.ID == "" {
		err = ErrWorkOrderNotFound
	}
	if err != nil {
		log.Printf("[invoice][usecase] INCONSISTENT: invoice written but work order not completed invoice_id=%s work_order_id=%s err=%v",
			created.ID, inv.WorkOrderID, err)
		return &MaterializationError{Stage: StageWorkOrderCompletion, WorkOrderID: inv.WorkOrderID, InvoiceID: created.ID, Err: err}
	}
	return nil
}

func (u *InvoiceUseCase) checkPaymentMethod(ctx context.Context, id string) error {
	if id == "" {
		return newValidationError("payment_method_id", "required")
	}
	pm, err := u.paymentMethods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pm.ID == "" {
		return newValidationError("payment_method_id", "unknown payment method")
	}
	if !pm.Active {
		return newValidationError("payment_method_id", "payment method is not active")
	}
	return nil
}

// checkAtInvoiceReview accepts a work order whose next advance lands on the end status,
// or one already holding the end status name.
func (u *InvoiceUseCase) checkAtInvoiceReview(ctx context.Context, w entities.WorkOrder) error {
	ledger, err := u.ledger.Ledger(ctx)
	if err != nil {
		return err
	}
	if cur, ok := ledger.Find(w.Status); ok && cur.IsEnd() {
		return nil
	}
	if next, ok := ledger.AdvanceTarget(w.Status); ok && next.IsEnd() {
		return nil
	}
	return ErrNotReadyForInvoice
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) GetByWorkOrderID(ctx context.Context, workOrderID string) (entities.Invoice, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	if workOrderID == "" {
		return entities.Invoice{}, ErrInvalidWorkOrderID
	}
	inv, err := u.invoices.GetByWorkOrderID(ctx, workOrderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}
