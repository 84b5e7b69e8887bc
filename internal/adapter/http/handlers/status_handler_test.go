package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"workorder_invoicing/internal/adapter/http/handlers/mocks"
	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newStatusRouter(t *testing.T) (*mocks.MockIStatusLedgerUseCase, *mocks.MockIStatusTransitionUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockIStatusLedgerUseCase(ctrl)
	transitions := mocks.NewMockIStatusTransitionUseCase(ctrl)
	h := NewStatusHandler(ledger, transitions)

	r := gin.New()
	r.GET("/v1/statuses", h.ListStatuses)
	r.GET("/v1/statuses/next", h.NextStatus)
	r.POST("/v1/statuses", h.CreateStatus)
	r.PUT("/v1/statuses/:id", h.UpdateStatus)
	return ledger, transitions, r
}

func TestStatusHandler_ListStatuses(t *testing.T) {
	t.Run("seeds and returns ledger", func(t *testing.T) {
		ledger, _, r := newStatusRouter(t)
		ledger.EXPECT().EnsureDefaults(gomock.Any()).Return(entities.StatusLedger{
			{ID: "s2", Name: "Delivered", Order: 4, Kind: entities.StatusKindEnd},
			{ID: "s1", Name: "Received", Order: 0, Kind: entities.StatusKindNormal},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/statuses", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 || body[0]["name"] != "Received" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ledger, _, r := newStatusRouter(t)
		ledger.EXPECT().EnsureDefaults(gomock.Any()).Return(nil, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/statuses", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestStatusHandler_CreateAndUpdate(t *testing.T) {
	t.Run("end and canceled flags together", func(t *testing.T) {
		_, _, r := newStatusRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/statuses", bytes.NewBufferString(`{"name":"Odd","order":3,"is_end_status":true,"is_canceled_status":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("kind contradicting legacy flag", func(t *testing.T) {
		_, _, r := newStatusRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/statuses", bytes.NewBufferString(`{"name":"Done","order":4,"kind":"normal","is_end_status":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %q", code)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, r := newStatusRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/statuses", bytes.NewBufferString(`{"order":1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("second end status rejected", func(t *testing.T) {
		ledger, _, r := newStatusRouter(t)
		ledger.EXPECT().Create(gomock.Any(), usecase.StatusInput{Name: "Closed", Order: 9, Kind: entities.StatusKindEnd}).
			Return(entities.StatusDefinition{}, &usecase.ValidationError{Field: "kind", Reason: "an end status already exists"})

		req := httptest.NewRequest(http.MethodPost, "/v1/statuses", bytes.NewBufferString(`{"name":"Closed","order":9,"is_end_status":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ledger, _, r := newStatusRouter(t)
		ledger.EXPECT().Create(gomock.Any(), usecase.StatusInput{Name: "Washing", Order: 3, Kind: entities.StatusKindNormal, Color: "#00f"}).
			Return(entities.StatusDefinition{ID: "s9", Name: "Washing", Order: 3, Kind: entities.StatusKindNormal, Color: "#00f"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/statuses", bytes.NewBufferString(`{"name":"Washing","order":3,"kind":"normal","color":"#00f"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("update not found", func(t *testing.T) {
		ledger, _, r := newStatusRouter(t)
		ledger.EXPECT().Update(gomock.Any(), "s404", gomock.Any()).Return(entities.StatusDefinition{}, usecase.ErrStatusNotFound)

		req := httptest.NewRequest(http.MethodPut, "/v1/statuses/s404", bytes.NewBufferString(`{"name":"X","order":1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestStatusHandler_NextStatus(t *testing.T) {
	t.Run("has next", func(t *testing.T) {
		_, transitions, r := newStatusRouter(t)
		transitions.EXPECT().NextStatus(gomock.Any(), "Received").
			Return(entities.StatusDefinition{Name: "In progress", Order: 1, Kind: entities.StatusKindNormal}, true, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/statuses/next?current=Received", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("ledger failure", func(t *testing.T) {
		_, transitions, r := newStatusRouter(t)
		transitions.EXPECT().NextStatus(gomock.Any(), "").Return(entities.StatusDefinition{}, false, errors.New("boom"))

		req := httptest.NewRequest(http.MethodGet, "/v1/statuses/next", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
