package usecase

import (
	"errors"
	"fmt"

	"workorder_invoicing/internal/domain/entities"
)

// AllocationError means both the ordered query and the fallback scan failed.
// The calling work-order creation must be aborted.
type AllocationError struct {
	CustomerClass entities.CustomerClass
	OrderedErr    error
	ScanErr       error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("invoice number allocation failed for %s: ordered query: %v; fallback scan: %v", e.CustomerClass, e.OrderedErr, e.ScanErr)
}

func (e *AllocationError) Unwrap() []error {
	return []error{e.OrderedErr, e.ScanErr}
}

// ValidationError is a recoverable rejection; no state was mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// MaterializationStage names which half of invoice issuance failed.
type MaterializationStage string

const (
	StageInvoiceCreate       MaterializationStage = "invoice_create"
	StageWorkOrderCompletion MaterializationStage = "work_order_completion"
	StageAtomicIssue         MaterializationStage = "atomic_issue"
)

// MaterializationError reports a failed invoice issuance.
//
//   - StageInvoiceCreate: nothing was written.
//   - StageWorkOrderCompletion: the invoice InvoiceID exists but the work order is not completed.
//   - StageAtomicIssue: the all-or-nothing write failed; nothing was written.
type MaterializationError struct {
	Stage       MaterializationStage
	WorkOrderID string
	InvoiceID   string
	Err         error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("invoice materialization failed at %s (work_order=%s invoice=%s): %v", e.Stage, e.WorkOrderID, e.InvoiceID, e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }

// Inconsistent reports whether the store was left with an invoice but no completion.
func (e *MaterializationError) Inconsistent() bool {
	return e.Stage == StageWorkOrderCompletion
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
