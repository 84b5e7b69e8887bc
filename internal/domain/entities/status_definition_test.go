package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusKindFromFlags(t *testing.T) {
	k, err := StatusKindFromFlags(false, false)
	require.NoError(t, err)
	assert.Equal(t, StatusKindNormal, k)

	k, err = StatusKindFromFlags(true, false)
	require.NoError(t, err)
	assert.Equal(t, StatusKindEnd, k)

	k, err = StatusKindFromFlags(false, true)
	require.NoError(t, err)
	assert.Equal(t, StatusKindCanceled, k)

	_, err = StatusKindFromFlags(true, true)
	assert.ErrorIs(t, err, ErrEndAndCanceledStatus)
}

func TestStatusLedger_Next(t *testing.T) {
	ledger := StatusLedger{
		{ID: "4", Name: "Completed", Order: 4, Kind: StatusKindEnd},
		{ID: "1", Name: "Pending", Order: 1},
		{ID: "5", Name: "Cancelled", Order: 5, Kind: StatusKindCanceled},
		{ID: "2", Name: "In Progress", Order: 2},
	}

	next, ok := ledger.Next("Pending")
	require.True(t, ok)
	assert.Equal(t, "In Progress", next.Name)

	next, ok = ledger.Next("In Progress")
	require.True(t, ok)
	assert.Equal(t, "Completed", next.Name)
	assert.True(t, next.IsEnd())

	_, ok = ledger.Next("Completed")
	assert.False(t, ok, "end status has no successor even when entries follow it")

	_, ok = ledger.Next("Cancelled")
	assert.False(t, ok)

	next, ok = ledger.Next("Ghost")
	require.True(t, ok)
	assert.Equal(t, "Pending", next.Name)

	_, ok = StatusLedger{}.Next("Pending")
	assert.False(t, ok)
}

func TestStatusLedger_AdvanceTarget(t *testing.T) {
	ledger := StatusLedger{
		{ID: "1", Name: "Pending", Order: 1},
		{ID: "2", Name: "Cancelled", Order: 2, Kind: StatusKindCanceled},
		{ID: "3", Name: "Review", Order: 3},
		{ID: "4", Name: "Done", Order: 4, Kind: StatusKindEnd},
		{ID: "5", Name: "Voided", Order: 5, Kind: StatusKindCanceled},
	}

	next, ok := ledger.Next("Pending")
	require.True(t, ok)
	assert.Equal(t, "Cancelled", next.Name, "Next keeps the raw ledger order")

	target, ok := ledger.AdvanceTarget("Pending")
	require.True(t, ok)
	assert.Equal(t, "Review", target.Name)

	target, ok = ledger.AdvanceTarget("Review")
	require.True(t, ok)
	assert.Equal(t, "Done", target.Name)

	_, ok = ledger.AdvanceTarget("Done")
	assert.False(t, ok)

	target, ok = StatusLedger{
		{ID: "1", Name: "Voided", Order: 1, Kind: StatusKindCanceled},
		{ID: "2", Name: "Pending", Order: 2},
	}.AdvanceTarget("Ghost")
	require.True(t, ok)
	assert.Equal(t, "Pending", target.Name, "unknown status restarts at the first non-canceled entry")

	_, ok = StatusLedger{
		{ID: "1", Name: "A", Order: 1},
		{ID: "2", Name: "Voided", Order: 2, Kind: StatusKindCanceled},
	}.AdvanceTarget("A")
	assert.False(t, ok, "only canceled entries remain")
}

func TestStatusLedger_Initial(t *testing.T) {
	assert.Equal(t, DefaultInitialStatus, StatusLedger{}.Initial())

	ledger := StatusLedger{
		{Name: "Rejected", Order: 0, Kind: StatusKindCanceled},
		{Name: "Intake", Order: 1},
	}
	assert.Equal(t, "Intake", ledger.Initial())
	assert.Equal(t, "Pending", DefaultStatusLedger().Initial())
}

func TestStatusLedger_EndAndCanceled(t *testing.T) {
	ledger := DefaultStatusLedger()
	ledger[3].ID = "end-1"

	end, ok := ledger.EndStatus("")
	require.True(t, ok)
	assert.Equal(t, "Completed", end.Name)

	_, ok = ledger.EndStatus("end-1")
	assert.False(t, ok)

	canceled, ok := ledger.CanceledStatus()
	require.True(t, ok)
	assert.Equal(t, "Cancelled", canceled.Name)

	_, ok = StatusLedger{{Name: "Only"}}.CanceledStatus()
	assert.False(t, ok)
}

func TestStatusLedger_SortedIsStableCopy(t *testing.T) {
	ledger := StatusLedger{{Name: "B", Order: 2}, {Name: "A1", Order: 1}, {Name: "A2", Order: 1}}
	sorted := ledger.Sorted()

	assert.Equal(t, []string{"A1", "A2", "B"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})
	assert.Equal(t, "B", ledger[0].Name)
}
