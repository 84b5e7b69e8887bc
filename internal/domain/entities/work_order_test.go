package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDashboardFilter_Matches(t *testing.T) {
	w := WorkOrder{
		ID:            "wo-1",
		CustomerID:    "cust-9",
		VehicleID:     "ABC1D23",
		CustomerClass: CustomerClassIndividual,
		InvoiceNumber: "D00012",
		Status:        "In Progress",
		Notes:         "Front brakes squeaking",
	}

	assert.True(t, DashboardFilter{}.Matches(w))
	assert.True(t, DashboardFilter{CustomerClass: CustomerClassIndividual}.Matches(w))
	assert.False(t, DashboardFilter{CustomerClass: CustomerClassCorporate}.Matches(w))
	assert.True(t, DashboardFilter{Status: "In Progress"}.Matches(w))
	assert.False(t, DashboardFilter{Status: "Pending"}.Matches(w))
	assert.True(t, DashboardFilter{Search: "brakes"}.Matches(w))
	assert.True(t, DashboardFilter{Search: "d00012"}.Matches(w))
	assert.False(t, DashboardFilter{Search: "tires"}.Matches(w))

	archived := w
	archived.IsArchived = true
	assert.False(t, DashboardFilter{}.Matches(archived))

	canceled := w
	canceled.IsCanceled = true
	assert.False(t, DashboardFilter{Search: "brakes"}.Matches(canceled))
}

func TestSumLineItems(t *testing.T) {
	items := []LineItem{
		{Price: decimal.RequireFromString("10.10")},
		{Price: decimal.RequireFromString("0.20")},
	}
	assert.True(t, SumLineItems(items).Equal(decimal.RequireFromString("10.30")))
	assert.True(t, SumLineItems(nil).IsZero())
}

func TestNewInvoiceFromWorkOrder(t *testing.T) {
	issued := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	w := WorkOrder{
		ID:            "wo-1",
		CustomerID:    "cust-1",
		VehicleID:     "veh-1",
		CustomerClass: CustomerClassCorporate,
		InvoiceNumber: "C00003",
		LineItems:     []LineItem{{RefType: LineItemRefService, RefID: "svc-1", Price: decimal.NewFromInt(50)}},
		Total:         decimal.NewFromInt(50),
	}

	inv := NewInvoiceFromWorkOrder("inv-1", w, "pm-1", "paid", issued)

	assert.Equal(t, "inv-1", inv.ID)
	assert.Equal(t, "wo-1", inv.WorkOrderID)
	assert.Equal(t, "C00003", inv.InvoiceNumber)
	assert.Equal(t, CustomerClassCorporate, inv.CustomerClass)
	assert.Equal(t, "pm-1", inv.PaymentMethodID)
	assert.Equal(t, issued, inv.IssuedAt)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(50)))

	w.LineItems[0].RefID = "changed"
	assert.Equal(t, "svc-1", inv.LineItems[0].RefID)
}

func TestPaymentStatusFromProvider(t *testing.T) {
	assert.Equal(t, PaymentStatusApproved, PaymentStatusFromProvider("approved"))
	assert.Equal(t, PaymentStatusApproved, PaymentStatusFromProvider("authorized"))
	assert.Equal(t, PaymentStatusDenied, PaymentStatusFromProvider("rejected"))
	assert.Equal(t, PaymentStatusDenied, PaymentStatusFromProvider("charged_back"))
	assert.Equal(t, PaymentStatusPending, PaymentStatusFromProvider("in_process"))
	assert.Equal(t, PaymentStatusPending, PaymentStatusFromProvider(""))
}

func TestClassAudit_Consistent(t *testing.T) {
	assert.True(t, ClassAudit{}.Consistent())
	assert.False(t, ClassAudit{Warnings: []ConsistencyWarning{{Kind: WarningSequenceGap, Number: 2}}}.Consistent())
}
