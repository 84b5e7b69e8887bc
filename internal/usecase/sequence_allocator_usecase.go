package usecase

import (
	"context"
	"log"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

// AllocationMode selects how the next invoice number is computed.
type AllocationMode string

const (
	// AllocationModeScan infers the last number from the work orders themselves.
	// Two concurrent allocations may mint the same number; the audit reports it.
	AllocationModeScan AllocationMode = "scan"
	// AllocationModeAtomic increments the counter document in a single conditional write.
	AllocationModeAtomic AllocationMode = "atomic"
)

func ParseAllocationMode(raw string) AllocationMode {
	if AllocationMode(raw) == AllocationModeAtomic {
		return AllocationModeAtomic
	}
	return AllocationModeScan
}

// ISequenceAllocator hands out the next invoice number of a customer class.

type ISequenceAllocator interface {
	Allocate(ctx context.Context, class entities.CustomerClass) (string, error)
}

type SequenceAllocator struct {
	repo     interfaces.IWorkOrderRepository
	counters interfaces.ICounterRepository
	mode     AllocationMode
}

var _ ISequenceAllocator = (*SequenceAllocator)(nil)

func NewSequenceAllocator(repo interfaces.IWorkOrderRepository, counters interfaces.ICounterRepository, mode AllocationMode) *SequenceAllocator {
	if mode == "" {
		mode = AllocationModeScan
	}
	return &SequenceAllocator{repo: repo, counters: counters, mode: mode}
}

func (a *SequenceAllocator) Allocate(ctx context.Context, class entities.CustomerClass) (string, error) {
	if !class.Valid() {
		return "", newValidationError("customer_class", "unknown customer class")
	}

	if a.mode == AllocationModeAtomic {
		return a.allocateAtomic(ctx, class)
	}

	last, err := a.lastUsedOrdered(ctx, class)
	if err != nil {
		log.Printf("[allocator][usecase] ordered query failed class=%s err=%v; falling back to scan", class, err)
		scanned, scanErr := a.maxScanned(ctx, class)
		if scanErr != nil {
			log.Printf("[allocator][usecase] fallback scan failed class=%s err=%v", class, scanErr)
			return "", &AllocationError{CustomerClass: class, OrderedErr: err, ScanErr: scanErr}
		}
		last = scanned
	}

	next := entities.FormatInvoiceNumber(class, last+1)
	log.Printf("[allocator][usecase] allocated class=%s last=%d next=%s", class, last, next)
	return next, nil
}

// lastUsedOrdered reads the most recently created work order of the class.
// A number with a foreign prefix (or none) counts as 0.
func (a *SequenceAllocator) lastUsedOrdered(ctx context.Context, class entities.CustomerClass) (int, error) {
	latest, err := a.repo.FindLatestByCustomerClass(ctx, class)
	if err != nil {
		return 0, err
	}
	if latest.ID == "" {
		return 0, nil
	}
	n, ok := entities.ParseInvoiceNumber(class, latest.InvoiceNumber)
	if !ok {
		return 0, nil
	}
	return n, nil
}

func (a *SequenceAllocator) maxScanned(ctx context.Context, class entities.CustomerClass) (int, error) {
	all, err := a.repo.ListByCustomerClass(ctx, class)
	if err != nil {
		return 0, err
	}
	return maxInvoiceNumber(class, all), nil
}

func (a *SequenceAllocator) allocateAtomic(ctx context.Context, class entities.CustomerClass) (string, error) {
	if a.counters == nil {
		return "", &AllocationError{CustomerClass: class, OrderedErr: errCounterNotConfigured, ScanErr: errCounterNotConfigured}
	}
	n, err := a.counters.Increment(ctx, class)
	if err != nil {
		log.Printf("[allocator][usecase] atomic increment failed class=%s err=%v", class, err)
		return "", &AllocationError{CustomerClass: class, OrderedErr: err, ScanErr: errAtomicNoFallback}
	}
	next := entities.FormatInvoiceNumber(class, n)
	log.Printf("[allocator][usecase] allocated (atomic) class=%s next=%s", class, next)
	return next, nil
}

func maxInvoiceNumber(class entities.CustomerClass, workOrders []entities.WorkOrder) int {
	max := 0
	for _, w := range workOrders {
		if w.CustomerClass != class {
			continue
		}
		if n, ok := entities.ParseInvoiceNumber(class, w.InvoiceNumber); ok && n > max {
			max = n
		}
	}
	return max
}
