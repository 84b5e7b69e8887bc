package entities

import "time"

type WarningKind string

const (
	WarningDuplicateNumber WarningKind = "duplicate_number"
	WarningSequenceGap     WarningKind = "sequence_gap"
)

// ConsistencyWarning is a non-fatal numbering problem found by the audit.
// It is reported only; nothing is repaired automatically.
//
// A sequence gap covers the whole contiguous missing range From..To; Number and
// InvoiceNumber then name its first number.
type ConsistencyWarning struct {
	Kind          WarningKind   `json:"kind"`
	CustomerClass CustomerClass `json:"customer_class"`
	Number        int           `json:"number"`
	InvoiceNumber string        `json:"invoice_number"`
	From          int           `json:"from,omitempty"`
	To            int           `json:"to,omitempty"`
	WorkOrderIDs  []string      `json:"work_order_ids,omitempty"`
}

// ClassAudit is the reconciliation result of one numbering namespace.
//
// ExpectedCount is the highest number observed, so a lost highest number is not
// reported as missing.
type ClassAudit struct {
	CustomerClass   CustomerClass        `json:"customer_class"`
	AssignedNumbers []int                `json:"assigned_numbers"`
	MissingNumbers  []int                `json:"missing_numbers"`
	ExpectedCount   int                  `json:"expected_count"`
	ActualCount     int                  `json:"actual_count"`
	CachedCounter   *int                 `json:"cached_counter,omitempty"`
	Warnings        []ConsistencyWarning `json:"warnings"`
}

func (a ClassAudit) Consistent() bool { return len(a.Warnings) == 0 }

type AuditReport struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	PerClass    map[CustomerClass]ClassAudit `json:"per_class"`
}

// LifecycleSummary is a read-side aggregation; each work order is counted once per axis.
type LifecycleSummary struct {
	Total           int                   `json:"total"`
	ByStatus        map[string]int        `json:"by_status"`
	ByCustomerClass map[CustomerClass]int `json:"by_customer_class"`
	ByMonth         map[string]int        `json:"by_month"`
}
