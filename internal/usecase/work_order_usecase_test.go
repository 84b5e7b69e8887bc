package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"workorder_invoicing/internal/domain/entities"
	mock_interfaces "workorder_invoicing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type workOrderFixture struct {
	repo      *mock_interfaces.MockIWorkOrderRepository
	statuses  *mock_interfaces.MockIStatusRepository
	publisher *mock_interfaces.MockIEventPublisher
	uc        *WorkOrderUseCase
}

func newWorkOrderFixture(ctrl *gomock.Controller) workOrderFixture {
	f := workOrderFixture{
		repo:      mock_interfaces.NewMockIWorkOrderRepository(ctrl),
		statuses:  mock_interfaces.NewMockIStatusRepository(ctrl),
		publisher: mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	f.uc = NewWorkOrderUseCase(
		f.repo,
		NewSequenceAllocator(f.repo, nil, AllocationModeScan),
		NewStatusLedgerUseCase(f.statuses, nil),
		f.publisher,
	)
	return f
}

func TestWorkOrderUseCase_Create(t *testing.T) {
	validInput := NewWorkOrder{
		CustomerID:    "cust-1",
		VehicleID:     "veh-1",
		CustomerClass: entities.CustomerClassCorporate,
		LineItems: []entities.LineItem{
			{RefType: entities.LineItemRefService, RefID: "svc-1", Price: decimal.RequireFromString("120.50")},
			{RefType: entities.LineItemRefBundle, RefID: "bdl-1", Price: decimal.RequireFromString("79.50")},
		},
	}

	t.Run("allocates number, initial status and total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.statuses.EXPECT().List(gomock.Any()).Return(seededLedger(), nil)
		f.repo.EXPECT().FindLatestByCustomerClass(gomock.Any(), entities.CustomerClassCorporate).
			Return(entities.WorkOrder{ID: "old", InvoiceNumber: "C00041"}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
				if w.InvoiceNumber != "C00042" {
					t.Fatalf("expected C00042, got %s", w.InvoiceNumber)
				}
				if w.Status != "Pending" {
					t.Fatalf("expected initial status Pending, got %q", w.Status)
				}
				if !w.Total.Equal(decimal.NewFromInt(200)) {
					t.Fatalf("expected total 200, got %s", w.Total)
				}
				if w.ID == "" || w.CreatedAt.IsZero() || w.IsArchived || w.IsCanceled {
					t.Fatalf("unexpected defaults: %+v", w)
				}
				return w, nil
			},
		)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		w, err := f.uc.Create(context.Background(), validInput)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.InvoiceNumber != "C00042" {
			t.Fatalf("unexpected work order: %+v", w)
		}
	})

	t.Run("allocation failure aborts creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.statuses.EXPECT().List(gomock.Any()).Return(seededLedger(), nil)
		f.repo.EXPECT().FindLatestByCustomerClass(gomock.Any(), gomock.Any()).Return(entities.WorkOrder{}, errors.New("ordered"))
		f.repo.EXPECT().ListByCustomerClass(gomock.Any(), gomock.Any()).Return(nil, errors.New("scan"))

		_, err := f.uc.Create(context.Background(), validInput)
		var allocErr *AllocationError
		if !errors.As(err, &allocErr) {
			t.Fatalf("expected AllocationError, got %v", err)
		}
	})

	t.Run("empty ledger falls back to Pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.statuses.EXPECT().List(gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().FindLatestByCustomerClass(gomock.Any(), gomock.Any()).Return(entities.WorkOrder{}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, w entities.WorkOrder) (entities.WorkOrder, error) { return w, nil },
		)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		w, err := f.uc.Create(context.Background(), validInput)
		if err != nil || w.Status != entities.DefaultInitialStatus || w.InvoiceNumber != "C00001" {
			t.Fatalf("unexpected result %+v err=%v", w, err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil, nil)
		bad := []NewWorkOrder{
			{VehicleID: "v", CustomerClass: entities.CustomerClassCorporate},
			{CustomerID: "c", CustomerClass: entities.CustomerClassCorporate},
			{CustomerID: "c", VehicleID: "v", CustomerClass: "vip"},
			{CustomerID: "c", VehicleID: "v", CustomerClass: entities.CustomerClassIndividual, LineItems: []entities.LineItem{{Price: decimal.NewFromInt(-1)}}},
		}
		for i, in := range bad {
			if _, err := uc.Create(context.Background(), in); !IsValidationError(err) {
				t.Fatalf("case %d: expected ValidationError, got %v", i, err)
			}
		}
	})
}

func TestWorkOrderUseCase_ListActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newWorkOrderFixture(ctrl)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.repo.EXPECT().ListAll(gomock.Any()).Return([]entities.WorkOrder{
		{ID: "old", CustomerClass: entities.CustomerClassCorporate, Status: "Pending", CreatedAt: base},
		{ID: "new", CustomerClass: entities.CustomerClassCorporate, Status: "Pending", CreatedAt: base.Add(time.Hour)},
		{ID: "archived", CustomerClass: entities.CustomerClassCorporate, Status: "Pending", IsArchived: true, CreatedAt: base},
		{ID: "canceled", CustomerClass: entities.CustomerClassCorporate, Status: "Pending", IsCanceled: true, CreatedAt: base},
		{ID: "other-class", CustomerClass: entities.CustomerClassIndividual, Status: "Pending", CreatedAt: base},
	}, nil)

	got, err := f.uc.ListActive(context.Background(), entities.DashboardFilter{CustomerClass: entities.CustomerClassCorporate, Status: "Pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected active list: %+v", got)
	}
}

func TestWorkOrderUseCase_Cancel(t *testing.T) {
	t.Run("defaults to the ledger canceled status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: "In Progress"}, nil)
		f.statuses.EXPECT().List(gomock.Any()).Return(seededLedger(), nil)
		f.repo.EXPECT().MarkCanceled(gomock.Any(), "wo-1", "Cancelled").Return(entities.WorkOrder{ID: "wo-1", Status: "Cancelled", IsCanceled: true}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		w, err := f.uc.Cancel(context.Background(), "wo-1", "")
		if err != nil || !w.IsCanceled {
			t.Fatalf("unexpected result %+v err=%v", w, err)
		}
	})

	t.Run("non-canceled status name is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: "Pending"}, nil)
		f.statuses.EXPECT().List(gomock.Any()).Return(seededLedger(), nil)

		if _, err := f.uc.Cancel(context.Background(), "wo-1", "Review"); !IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("completed work order cannot be canceled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCompleted}, nil)

		if _, err := f.uc.Cancel(context.Background(), "wo-1", ""); !errors.Is(err, ErrWorkOrderTerminal) {
			t.Fatalf("expected ErrWorkOrderTerminal, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_ArchiveAndGet(t *testing.T) {
	t.Run("archive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().MarkArchived(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", IsArchived: true}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		w, err := f.uc.Archive(context.Background(), "wo-1")
		if err != nil || !w.IsArchived {
			t.Fatalf("unexpected result %+v err=%v", w, err)
		}
	})

	t.Run("archive not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().MarkArchived(gomock.Any(), "wo-1").Return(entities.WorkOrder{}, nil)

		if _, err := f.uc.Archive(context.Background(), "wo-1"); !errors.Is(err, ErrWorkOrderNotFound) {
			t.Fatalf("expected ErrWorkOrderNotFound, got %v", err)
		}
	})

	t.Run("get invalid id", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil, nil)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidWorkOrderID) {
			t.Fatalf("expected ErrInvalidWorkOrderID, got %v", err)
		}
	})

	t.Run("get repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWorkOrderFixture(ctrl)

		f.repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{}, errors.New("db"))

		if _, err := f.uc.GetByID(context.Background(), "wo-1"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
