package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	request "workorder_invoicing/internal/adapter/http/dto/request"
	"workorder_invoicing/internal/adapter/http/handlers/mocks"
	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type workOrderFixture struct {
	workOrders  *mocks.MockIWorkOrderUseCase
	transitions *mocks.MockIStatusTransitionUseCase
	invoices    *mocks.MockIInvoiceUseCase
	router      *gin.Engine
}

func newWorkOrderFixture(t *testing.T) workOrderFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	ctrl := gomock.NewController(t)
	f := workOrderFixture{
		workOrders:  mocks.NewMockIWorkOrderUseCase(ctrl),
		transitions: mocks.NewMockIStatusTransitionUseCase(ctrl),
		invoices:    mocks.NewMockIInvoiceUseCase(ctrl),
		router:      gin.New(),
	}
	h := NewWorkOrderHandler(f.workOrders, f.transitions, f.invoices)
	f.router.POST("/v1/work-orders", h.CreateWorkOrder)
	f.router.GET("/v1/work-orders/active", h.ListActive)
	f.router.GET("/v1/work-orders/:id", h.GetWorkOrder)
	f.router.POST("/v1/work-orders/:id/advance", h.AdvanceWorkOrder)
	f.router.POST("/v1/work-orders/:id/cancel", h.CancelWorkOrder)
	f.router.POST("/v1/work-orders/:id/archive", h.ArchiveWorkOrder)
	f.router.POST("/v1/work-orders/:id/invoice", h.IssueInvoice)
	return f
}

func (f workOrderFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body.Code
}

const validWorkOrderBody = `{"customer_id":"cust-1","vehicle_id":"veh-1","customer_class":"corporate","line_items":[{"ref_type":"service","ref_id":"svc-1","description":"Oil change","price":"120.50"}]}`

func TestWorkOrderHandler_CreateWorkOrder(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		w := f.do(http.MethodPost, "/v1/work-orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown customer class", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		w := f.do(http.MethodPost, "/v1/work-orders", `{"customer_id":"c","vehicle_id":"v","customer_class":"vip","line_items":[{"ref_type":"service","ref_id":"s"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("no line items", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		w := f.do(http.MethodPost, "/v1/work-orders", `{"customer_id":"c","vehicle_id":"v","customer_class":"individual","line_items":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.WorkOrder{}, &usecase.ValidationError{Field: "line_items", Reason: "price must not be negative"})

		w := f.do(http.MethodPost, "/v1/work-orders", validWorkOrderBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %s", code)
		}
	})

	t.Run("allocation error", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.WorkOrder{}, &usecase.AllocationError{CustomerClass: entities.CustomerClassCorporate, OrderedErr: errors.New("a"), ScanErr: errors.New("b")})

		w := f.do(http.MethodPost, "/v1/work-orders", validWorkOrderBody)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.NewWorkOrder) (entities.WorkOrder, error) {
			if in.CustomerClass != entities.CustomerClassCorporate || len(in.LineItems) != 1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entities.WorkOrder{
				ID:            "wo-1",
				CustomerClass: in.CustomerClass,
				InvoiceNumber: "C00001",
				Status:        "Received",
				LineItems:     in.LineItems,
				Total:         decimal.RequireFromString("120.50"),
				CreatedAt:     time.Now().UTC(),
			}, nil
		})

		w := f.do(http.MethodPost, "/v1/work-orders", validWorkOrderBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["invoice_number"] != "C00001" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestWorkOrderHandler_GetAndListActive(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().GetByID(gomock.Any(), "wo-404").Return(entities.WorkOrder{}, usecase.ErrWorkOrderNotFound)

		w := f.do(http.MethodGet, "/v1/work-orders/wo-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list with invalid class", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		w := f.do(http.MethodGet, "/v1/work-orders/active?customer_class=vip", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list passes filter", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		want := entities.DashboardFilter{CustomerClass: entities.CustomerClassIndividual, Status: "In progress", Search: "civic"}
		f.workOrders.EXPECT().ListActive(gomock.Any(), want).Return([]entities.WorkOrder{{ID: "wo-1"}, {ID: "wo-2"}}, nil)

		w := f.do(http.MethodGet, "/v1/work-orders/active?customer_class=individual&status=In+progress&search=civic", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("expected 2 work orders, got %d", len(body))
		}
	})
}

func TestWorkOrderHandler_Lifecycle(t *testing.T) {
	t.Run("advance into review", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.transitions.EXPECT().Advance(gomock.Any(), "wo-1").Return(usecase.TransitionResult{
			WorkOrder:             entities.WorkOrder{ID: "wo-1", Status: "Quality check"},
			From:                  "Quality check",
			Target:                entities.StatusDefinition{Name: "Delivered", Kind: entities.StatusKindEnd},
			InvoiceReviewRequired: true,
		}, nil)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/advance", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["invoice_review_required"] != true || body["target"] != "Delivered" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("advance terminal", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.transitions.EXPECT().Advance(gomock.Any(), "wo-1").Return(usecase.TransitionResult{}, usecase.ErrWorkOrderTerminal)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/advance", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("cancel without body", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Cancel(gomock.Any(), "wo-1", "").Return(entities.WorkOrder{ID: "wo-1", IsCanceled: true}, nil)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/cancel", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("cancel with status", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Cancel(gomock.Any(), "wo-1", "Rejected").
			Return(entities.WorkOrder{}, &usecase.ValidationError{Field: "status", Reason: "not a canceled status"})

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/cancel", `{"status":"Rejected"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("archive", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.workOrders.EXPECT().Archive(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", IsArchived: true}, nil)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/archive", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestWorkOrderHandler_IssueInvoice(t *testing.T) {
	t.Run("missing payment method", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/invoice", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already issued", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.invoices.EXPECT().Issue(gomock.Any(), "wo-1", "pm-1", "").Return(entities.Invoice{}, usecase.ErrInvoiceAlreadyIssued)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/invoice", `{"payment_method_id":"pm-1"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("completion failed after invoice write", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.invoices.EXPECT().Issue(gomock.Any(), "wo-1", "pm-1", "").Return(entities.Invoice{}, &usecase.MaterializationError{
			Stage:       usecase.StageWorkOrderCompletion,
			WorkOrderID: "wo-1",
			InvoiceID:   "inv-1",
			Err:         errors.New("throttled"),
		})

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/invoice", `{"payment_method_id":"pm-1"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "WORK_ORDER_COMPLETION_FAILED" {
			t.Fatalf("expected WORK_ORDER_COMPLETION_FAILED, got %s", code)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newWorkOrderFixture(t)
		f.invoices.EXPECT().Issue(gomock.Any(), "wo-1", "pm-1", "paid at desk").Return(entities.Invoice{
			ID:            "inv-1",
			WorkOrderID:   "wo-1",
			InvoiceNumber: "D00042",
			Total:         decimal.RequireFromString("99.90"),
		}, nil)

		w := f.do(http.MethodPost, "/v1/work-orders/wo-1/invoice", `{"payment_method_id":"pm-1","notes":"paid at desk"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}
