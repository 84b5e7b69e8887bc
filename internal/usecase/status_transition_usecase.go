package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

var (
	ErrNoFurtherTransition = errors.New("no further status transition")
	ErrWorkOrderTerminal   = errors.New("work order is completed or canceled")
)

// TransitionResult is the outcome of an operator-requested advance.
//
// When InvoiceReviewRequired is true the work order was NOT written: Target is the
// ledger's end status and the status only changes once the invoice is issued.
type TransitionResult struct {
	WorkOrder             entities.WorkOrder        `json:"work_order"`
	From                  string                    `json:"from"`
	Target                entities.StatusDefinition `json:"target"`
	InvoiceReviewRequired bool                      `json:"invoice_review_required"`
}

type IStatusTransitionUseCase interface {
	NextStatus(ctx context.Context, current string) (entities.StatusDefinition, bool, error)
	Advance(ctx context.Context, workOrderID string) (TransitionResult, error)
}

type StatusTransitionUseCase struct {
	workOrders interfaces.IWorkOrderRepository
	ledger     IStatusLedgerUseCase
	publisher  interfaces.IEventPublisher
}

var _ IStatusTransitionUseCase = (*StatusTransitionUseCase)(nil)

func NewStatusTransitionUseCase(workOrders interfaces.IWorkOrderRepository, ledger IStatusLedgerUseCase, publisher interfaces.IEventPublisher) *StatusTransitionUseCase {
	return &StatusTransitionUseCase{workOrders: workOrders, ledger: ledger, publisher: publisher}
}

func (u *StatusTransitionUseCase) NextStatus(ctx context.Context, current string) (entities.StatusDefinition, bool, error) {
	ledger, err := u.ledger.Ledger(ctx)
	if err != nil {
		return entities.StatusDefinition{}, false, err
	}
	next, ok := ledger.Next(current)
	return next, ok, nil
}

func (u *StatusTransitionUseCase) Advance(ctx context.Context, workOrderID string) (TransitionResult, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	if workOrderID == "" {
		return TransitionResult{}, ErrInvalidWorkOrderID
	}

	w, err := u.workOrders.GetByID(ctx, workOrderID)
	if err != nil {
		return TransitionResult{}, err
	}
	if w.ID == "" {
		return TransitionResult{}, ErrWorkOrderNotFound
	}
	if w.IsCompleted() || w.IsCanceled {
		return TransitionResult{}, ErrWorkOrderTerminal
	}

	ledger, err := u.ledger.Ledger(ctx)
	if err != nil {
		return TransitionResult{}, err
	}
	if cur, ok := ledger.Find(w.Status); ok && cur.IsCanceled() {
		return TransitionResult{}, ErrWorkOrderTerminal
	}

	target, ok := ledger.AdvanceTarget(w.Status)
	if !ok {
		log.Printf("[transition][usecase] no further transition work_order_id=%s status=%q", w.ID, w.Status)
		return TransitionResult{}, ErrNoFurtherTransition
	}

	res := TransitionResult{WorkOrder: w, From: w.Status, Target: target}
	if target.IsEnd() {
		log.Printf("[transition][usecase] end status reached; invoice review required work_order_id=%s target=%q", w.ID, target.Name)
		res.InvoiceReviewRequired = true
		return res, nil
	}

	updated, err := u.workOrders.UpdateStatus(ctx, w.ID, target.Name)
	if err != nil {
		log.Printf("[transition][usecase] status write failed work_order_id=%s target=%q err=%v", w.ID, target.Name, err)
		return TransitionResult{}, err
	}
	if updated.ID == "" {
		return TransitionResult{}, ErrWorkOrderNotFound
	}
	log.Printf("[transition][usecase] advanced work_order_id=%s from=%q to=%q", w.ID, res.From, updated.Status)
	publishEvent(ctx, u.publisher, entities.EventWorkOrderStatusAdvanced, updated.ID, workOrderPayload(updated, res.From))

	res.WorkOrder = updated
	return res, nil
}
