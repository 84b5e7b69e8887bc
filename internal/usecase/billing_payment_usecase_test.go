package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"workorder_invoicing/internal/domain/entities"
	mock_interfaces "workorder_invoicing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func issuedInvoice() entities.Invoice {
	return entities.Invoice{ID: "inv-1", InvoiceNumber: "C00012", Total: decimal.RequireFromString("77.20")}
}

func TestBillingPaymentUseCase_CreateAndApprove_Validations(t *testing.T) {
	t.Run("empty invoice id", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		_, err := uc.CreateAndApprove(context.Background(), " ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidPaymentInvoiceID) {
			t.Fatalf("expected ErrInvalidPaymentInvoiceID, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		_, err := uc.CreateAndApprove(context.Background(), "inv-1", nil)
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_InvoiceChecks(t *testing.T) {
	t.Run("invoice repo returns error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, errors.New("db"))

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("invoice not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_PayloadValidation(t *testing.T) {
	t.Run("missing payment_method_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("missing payer outside sandbox", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{AccessToken: "APP-123"})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("non-object payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`[1,2]`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"message":"Customer not found","code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`{"message":"Invalid users involved","code":2034}`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized","status":401}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"error":"bad_request","status":400}`), want: ErrPaymentGatewayBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewBillingPaymentUseCase(nil, invoices, gateway, PaymentSettings{})

			invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown gateway error", func(t *testing.T) {
		if got := classifyGatewayError(errors.New("boom")); got == nil || got.Error() != "boom" {
			t.Fatalf("expected passthrough, got %v", got)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_SuccessAndStatuses(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
		providerResp   json.RawMessage
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusDenied, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPending, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "invalid provider response json", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
			invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewBillingPaymentUseCase(repo, invoices, gateway, PaymentSettings{
				AccessToken:     "TEST-token",
				TestPayerUserID: "123",
				TestPayerEmail:  "sandbox@test.com",
			})

			invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "C00012" {
						t.Fatalf("external_reference should be the invoice number, got %v", body["external_reference"])
					}
					if body["description"] != "Invoice C00012" {
						t.Fatalf("description not set")
					}
					if body["transaction_amount"] != float64(77.2) {
						t.Fatalf("transaction_amount should come from the invoice total")
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
						t.Fatalf("expected sandbox payer mapping, got %v", payer)
					}
					return "pay-1", tc.providerStatus, tc.providerResp, nil
				},
			)
			repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.BillingPayment{})).DoAndReturn(
				func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
					if p.ID != "pay-1" || p.InvoiceID != "inv-1" || p.Status != tc.want || p.Date.IsZero() {
						t.Fatalf("unexpected payment: %+v", p)
					}
					return p, nil
				},
			)

			res, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"}}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, res.Status)
			}
		})
	}

	t.Run("mock mode skips the gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewBillingPaymentUseCase(repo, invoices, nil, PaymentSettings{Mock: true})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
				if p.Status != entities.PaymentStatusApproved || p.MPPayload["external_reference"] != "C00012" {
					t.Fatalf("unexpected mock payment: %+v", p)
				}
				return p, nil
			},
		)

		if _, err := uc.CreateAndApprove(context.Background(), "inv-1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("repository create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewBillingPaymentUseCase(repo, invoices, gateway, PaymentSettings{})

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issuedInvoice(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("pay-1", "approved", json.RawMessage(`{"id":123}`), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingPayment{}, errors.New("db-create"))

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		if err == nil || err.Error() != "db-create" {
			t.Fatalf("expected db-create error, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		_, err := uc.GetByID(context.Background(), "")
		if err == nil || err.Error() != "invalid payment id" {
			t.Fatalf("expected invalid payment id, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		uc := NewBillingPaymentUseCase(repo, nil, nil, PaymentSettings{})

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.BillingPayment{}, nil)

		if _, err := uc.GetByID(context.Background(), "pay-1"); !errors.Is(err, ErrBillingPaymentNotFound) {
			t.Fatalf("expected ErrBillingPaymentNotFound, got %v", err)
		}
	})

	t.Run("ListByInvoiceID invalid", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{})
		if _, err := uc.ListByInvoiceID(context.Background(), " "); !errors.Is(err, ErrInvalidPaymentInvoiceID) {
			t.Fatalf("expected ErrInvalidPaymentInvoiceID, got %v", err)
		}
	})

	t.Run("ListByInvoiceID success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		uc := NewBillingPaymentUseCase(repo, nil, nil, PaymentSettings{})

		repo.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return([]entities.BillingPayment{{ID: "pay-1"}}, nil)

		got, err := uc.ListByInvoiceID(context.Background(), "inv-1")
		if err != nil || len(got) != 1 {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	})
}

func TestBillingPaymentUseCase_PayerHelpers(t *testing.T) {
	t.Run("ensurePayerDefaults uses configured email", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{TestPayerEmail: "custom@test.com"})
		m := map[string]any{}
		uc.ensurePayerDefaults(m)
		payer := m["payer"].(map[string]any)
		if payer["email"] != "custom@test.com" || payer["type"] != "customer" {
			t.Fatalf("unexpected payer %v", payer)
		}
	})

	t.Run("ensurePayerDefaults sandbox fallback", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{AccessToken: "TEST-123"})
		m := map[string]any{}
		uc.ensurePayerDefaults(m)
		if m["payer"].(map[string]any)["email"] != "test_user_br@testuser.com" {
			t.Fatalf("expected sandbox email, got %v", m["payer"])
		}
	})

	t.Run("ensurePayerDefaults keeps explicit payer id", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{TestPayerEmail: "custom@test.com"})
		m := map[string]any{"payer": map[string]any{"id": 99}}
		uc.ensurePayerDefaults(m)
		if _, ok := m["payer"].(map[string]any)["email"]; ok {
			t.Fatalf("email must not be added when id is present")
		}
	})

	t.Run("normalizeSandboxPayer ignores production tokens", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSettings{AccessToken: "APP-1", TestPayerUserID: "123", TestPayerEmail: "s@test.com"})
		m := map[string]any{"payer": map[string]any{"id": "123"}}
		uc.normalizeSandboxPayer(m)
		if m["payer"].(map[string]any)["id"] != "123" {
			t.Fatalf("payer should be untouched: %v", m["payer"])
		}
	})

	t.Run("hasPayer", func(t *testing.T) {
		if hasPayer(map[string]any{}) || hasPayer(map[string]any{"payer": "x"}) {
			t.Fatalf("expected no payer")
		}
		if !hasPayer(map[string]any{"payer": map[string]any{"id": 1}}) {
			t.Fatalf("numeric id is a payer")
		}
	})
}
