package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

// IAuditUseCase reconciles the invoice numbers actually held by work orders.
//
// Findings are informational: nothing here blocks other operations and the only repair
// is ResyncCounter, which re-anchors the cached counter without touching work orders.

type IAuditUseCase interface {
	Audit(ctx context.Context) (entities.AuditReport, error)
	ResyncCounter(ctx context.Context, class entities.CustomerClass) (entities.InvoiceCounter, error)
	FindByNumber(ctx context.Context, class entities.CustomerClass, number int) ([]entities.WorkOrder, error)
	LifecycleSummary(ctx context.Context) (entities.LifecycleSummary, error)
}

type AuditUseCase struct {
	workOrders interfaces.IWorkOrderRepository
	counters   interfaces.ICounterRepository
	publisher  interfaces.IEventPublisher
	now        func() time.Time
}

var _ IAuditUseCase = (*AuditUseCase)(nil)

func NewAuditUseCase(workOrders interfaces.IWorkOrderRepository, counters interfaces.ICounterRepository, publisher interfaces.IEventPublisher) *AuditUseCase {
	return &AuditUseCase{workOrders: workOrders, counters: counters, publisher: publisher, now: utcNow}
}

// Audit covers every work order, canceled and archived ones included: they still hold
// their number.
func (u *AuditUseCase) Audit(ctx context.Context) (entities.AuditReport, error) {
	all, err := u.workOrders.ListAll(ctx)
	if err != nil {
		log.Printf("[audit][usecase] work order listing failed err=%v", err)
		return entities.AuditReport{}, err
	}

	report := entities.AuditReport{
		GeneratedAt: u.now(),
		PerClass:    make(map[entities.CustomerClass]entities.ClassAudit, len(entities.CustomerClasses())),
	}
	for _, class := range entities.CustomerClasses() {
		a := auditClass(class, all)
		if u.counters != nil {
			c, found, err := u.counters.Get(ctx, class)
			if err != nil {
				log.Printf("[audit][usecase] cached counter read failed class=%s err=%v", class, err)
			} else if found {
				v := c.LastValue
				a.CachedCounter = &v
			}
		}
		report.PerClass[class] = a
		log.Printf("[audit][usecase] class=%s expected=%d actual=%d missing=%d warnings=%d",
			class, a.ExpectedCount, a.ActualCount, len(a.MissingNumbers), len(a.Warnings))
	}
	return report, nil
}

// auditClass reconciles one namespace. AssignedNumbers keeps duplicates, so its length is
// ActualCount.
func auditClass(class entities.CustomerClass, workOrders []entities.WorkOrder) entities.ClassAudit {
	holders := map[int][]string{}
	assigned := []int{}
	for _, w := range workOrders {
		if w.CustomerClass != class {
			continue
		}
		n, ok := entities.ParseInvoiceNumber(class, w.InvoiceNumber)
		if !ok {
			continue
		}
		assigned = append(assigned, n)
		holders[n] = append(holders[n], w.ID)
	}
	sort.Ints(assigned)

	expected := 0
	if len(assigned) > 0 {
		expected = assigned[len(assigned)-1]
	}

	a := entities.ClassAudit{
		CustomerClass:   class,
		AssignedNumbers: assigned,
		MissingNumbers:  []int{},
		ExpectedCount:   expected,
		ActualCount:     len(assigned),
		Warnings:        []entities.ConsistencyWarning{},
	}

	// One gap warning per contiguous missing range.
	prev := 0
	for i, n := range assigned {
		if i > 0 && n == assigned[i-1] {
			continue
		}
		if n > prev+1 {
			for m := prev + 1; m < n; m++ {
				a.MissingNumbers = append(a.MissingNumbers, m)
			}
			a.Warnings = append(a.Warnings, entities.ConsistencyWarning{
				Kind:          entities.WarningSequenceGap,
				CustomerClass: class,
				Number:        prev + 1,
				InvoiceNumber: entities.FormatInvoiceNumber(class, prev+1),
				From:          prev + 1,
				To:            n - 1,
			})
		}
		if ids := holders[n]; len(ids) > 1 {
			a.Warnings = append(a.Warnings, entities.ConsistencyWarning{
				Kind:          entities.WarningDuplicateNumber,
				CustomerClass: class,
				Number:        n,
				InvoiceNumber: entities.FormatInvoiceNumber(class, n),
				WorkOrderIDs:  ids,
			})
		}
		prev = n
	}
	return a
}

// ResyncCounter overwrites the cached counter with the highest number actually assigned.
// Gaps and duplicates are left as they are.
func (u *AuditUseCase) ResyncCounter(ctx context.Context, class entities.CustomerClass) (entities.InvoiceCounter, error) {
	if !class.Valid() {
		return entities.InvoiceCounter{}, newValidationError("customer_class", "unknown customer class")
	}
	if u.counters == nil {
		return entities.InvoiceCounter{}, errCounterNotConfigured
	}

	all, err := u.workOrders.ListByCustomerClass(ctx, class)
	if err != nil {
		return entities.InvoiceCounter{}, err
	}
	max := maxInvoiceNumber(class, all)

	previous := 0
	if c, found, err := u.counters.Get(ctx, class); err != nil {
		log.Printf("[audit][usecase] previous counter read failed class=%s err=%v", class, err)
	} else if found {
		previous = c.LastValue
	}

	c, err := u.counters.Set(ctx, class, max)
	if err != nil {
		log.Printf("[audit][usecase] counter resync failed class=%s value=%d err=%v", class, max, err)
		return entities.InvoiceCounter{}, err
	}
	log.Printf("[audit][usecase] counter resynced class=%s previous=%d last_value=%d", class, previous, c.LastValue)
	publishEvent(ctx, u.publisher, entities.EventInvoiceCounterResynced, string(class), entities.CounterResyncedPayload{
		CustomerClass: class,
		Previous:      previous,
		LastValue:     c.LastValue,
	})
	return c, nil
}

// FindByNumber lists every work order holding the given number, for gap and duplicate
// investigation.
func (u *AuditUseCase) FindByNumber(ctx context.Context, class entities.CustomerClass, number int) ([]entities.WorkOrder, error) {
	if !class.Valid() {
		return nil, newValidationError("customer_class", "unknown customer class")
	}
	if number <= 0 {
		return nil, newValidationError("number", "must be positive")
	}
	return u.workOrders.FindByInvoiceNumber(ctx, class, entities.FormatInvoiceNumber(class, number))
}

func (u *AuditUseCase) LifecycleSummary(ctx context.Context) (entities.LifecycleSummary, error) {
	all, err := u.workOrders.ListAll(ctx)
	if err != nil {
		return entities.LifecycleSummary{}, err
	}
	return summarize(all), nil
}

func summarize(workOrders []entities.WorkOrder) entities.LifecycleSummary {
	s := entities.LifecycleSummary{
		Total:           len(workOrders),
		ByStatus:        map[string]int{},
		ByCustomerClass: map[entities.CustomerClass]int{},
		ByMonth:         map[string]int{},
	}
	for _, w := range workOrders {
		s.ByStatus[w.Status]++
		s.ByCustomerClass[w.CustomerClass]++
		s.ByMonth[w.CreatedAt.UTC().Format("2006-01")]++
	}
	return s
}
