package entities

import (
	"errors"
	"sort"
	"time"
)

// StatusKind tags a ledger entry as a regular step, the invoicing end step or
// the abandonment step.
//
// A status is exactly one of the three, so "end and canceled at once" cannot be stored.

type StatusKind string

const (
	StatusKindNormal   StatusKind = "normal"
	StatusKindEnd      StatusKind = "end"
	StatusKindCanceled StatusKind = "canceled"
)

// DefaultInitialStatus is used when the ledger has no usable entry.
const DefaultInitialStatus = "Pending"

var ErrEndAndCanceledStatus = errors.New("a status cannot be both end and canceled")

// StatusKindFromFlags converts the pair of booleans used by clients into a kind.
func StatusKindFromFlags(isEnd, isCanceled bool) (StatusKind, error) {
	switch {
	case isEnd && isCanceled:
		return "", ErrEndAndCanceledStatus
	case isEnd:
		return StatusKindEnd, nil
	case isCanceled:
		return StatusKindCanceled, nil
	}
	return StatusKindNormal, nil
}

func (k StatusKind) Valid() bool {
	switch k {
	case StatusKindNormal, StatusKindEnd, StatusKindCanceled:
		return true
	}
	return false
}

// StatusDefinition is one entry of the lifecycle ledger.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Work orders reference a status by Name (string equality), not by ID.
type StatusDefinition struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Order     int        `json:"order"`
	Kind      StatusKind `json:"kind"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s StatusDefinition) IsEnd() bool      { return s.Kind == StatusKindEnd }
func (s StatusDefinition) IsCanceled() bool { return s.Kind == StatusKindCanceled }

// StatusLedger is the admin-maintained, linear workflow shared by every work order.
type StatusLedger []StatusDefinition

// DefaultStatusLedger is seeded when no status exists yet.
func DefaultStatusLedger() StatusLedger {
	return StatusLedger{
		{Name: "Pending", Order: 1, Kind: StatusKindNormal, Color: "#9e9e9e"},
		{Name: "In Progress", Order: 2, Kind: StatusKindNormal, Color: "#2196f3"},
		{Name: "Review", Order: 3, Kind: StatusKindNormal, Color: "#ff9800"},
		{Name: "Completed", Order: 4, Kind: StatusKindEnd, Color: "#4caf50"},
		{Name: "Cancelled", Order: 5, Kind: StatusKindCanceled, Color: "#f44336"},
	}
}

// Sorted returns a copy ordered by Order ascending. Ties keep their stored order.
func (l StatusLedger) Sorted() StatusLedger {
	out := make(StatusLedger, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (l StatusLedger) Find(name string) (StatusDefinition, bool) {
	for _, s := range l {
		if s.Name == name {
			return s, true
		}
	}
	return StatusDefinition{}, false
}

// Initial is the first non-canceled status by ascending order.
func (l StatusLedger) Initial() string {
	for _, s := range l.Sorted() {
		if !s.IsCanceled() {
			return s.Name
		}
	}
	return DefaultInitialStatus
}

// Next computes the status that follows current.
//
//   - unknown current status => first entry (start over)
//   - current is last or is the end status => no transition
func (l StatusLedger) Next(current string) (StatusDefinition, bool) {
	sorted := l.Sorted()
	if len(sorted) == 0 {
		return StatusDefinition{}, false
	}

	idx := indexOfStatus(sorted, current)
	if idx < 0 {
		return sorted[0], true
	}
	if idx == len(sorted)-1 || sorted[idx].IsEnd() {
		return StatusDefinition{}, false
	}
	return sorted[idx+1], true
}

// AdvanceTarget is Next with canceled entries stepped over: cancellation is only ever
// set by hand, so an advance lands on the following non-canceled status.
func (l StatusLedger) AdvanceTarget(current string) (StatusDefinition, bool) {
	sorted := l.Sorted()
	start := 0
	if idx := indexOfStatus(sorted, current); idx >= 0 {
		if sorted[idx].IsEnd() {
			return StatusDefinition{}, false
		}
		start = idx + 1
	}
	for _, s := range sorted[start:] {
		if !s.IsCanceled() {
			return s, true
		}
	}
	return StatusDefinition{}, false
}

func indexOfStatus(sorted StatusLedger, name string) int {
	for i, s := range sorted {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// EndStatus returns the end entry, if any. Excluding the entry with excludeID lets
// callers check the single-end rule while editing that same entry.
func (l StatusLedger) EndStatus(excludeID string) (StatusDefinition, bool) {
	for _, s := range l {
		if s.IsEnd() && s.ID != excludeID {
			return s, true
		}
	}
	return StatusDefinition{}, false
}

// CanceledStatus returns the first canceled entry by order.
func (l StatusLedger) CanceledStatus() (StatusDefinition, bool) {
	for _, s := range l.Sorted() {
		if s.IsCanceled() {
			return s, true
		}
	}
	return StatusDefinition{}, false
}
