package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentInvoiceID        = errors.New("invalid invoice_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentSettings carries the Mercado Pago knobs loaded from config.
type PaymentSettings struct {
	Mock            bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (s PaymentSettings) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(s.AccessToken), "TEST-")
}

// IBillingPaymentUseCase settles issued invoices.
//
//   - the amount charged is always the invoice total
//   - external_reference is the invoice number, so provider events reconcile by number

type IBillingPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo     interfaces.IBillingPaymentRepository
	invoices interfaces.IInvoiceRepository
	gateway  interfaces.IPaymentGateway
	settings PaymentSettings
	now      func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(repo interfaces.IBillingPaymentRepository, invoices interfaces.IInvoiceRepository, gateway interfaces.IPaymentGateway, settings PaymentSettings) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, invoices: invoices, gateway: gateway, settings: settings, now: utcNow}
}

func (u *BillingPaymentUseCase) CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	log.Printf("[payment][usecase] create-and-approve start invoice_id=%q payload_len=%d mock=%t", invoiceID, len(mpPayload), u.settings.Mock)
	if invoiceID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentInvoiceID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.settings.Mock {
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !u.settings.Mock {
		return entities.BillingPayment{}, ErrPaymentGatewayNotConfigured
	}

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		log.Printf("[payment][usecase] load invoice failed invoice_id=%s err=%v", invoiceID, err)
		return entities.BillingPayment{}, err
	}
	if inv.ID == "" {
		return entities.BillingPayment{}, ErrInvoiceNotFound
	}

	req, err := u.providerRequest(inv, mpPayload)
	if err != nil {
		log.Printf("[payment][usecase] rejected payload invoice=%s err=%v", inv.InvoiceNumber, err)
		return entities.BillingPayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.settle(ctx, inv, req)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response not an object invoice=%s err=%v", inv.InvoiceNumber, err)
	}

	created, err := u.repo.Create(ctx, entities.BillingPayment{
		ID:           providerID,
		InvoiceID:    inv.ID,
		Date:         u.now(),
		Status:       entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	})
	if err != nil {
		log.Printf("[payment][usecase] persist payment failed invoice=%s payment_id=%s err=%v", inv.InvoiceNumber, providerID, err)
		return entities.BillingPayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve done invoice=%s payment_id=%s status=%s", inv.InvoiceNumber, created.ID, created.Status)
	return created, nil
}

// providerRequest charges the invoice total and tags the payment with the invoice number.
// Outside mock mode the payload must carry a payment_method_id and a payer.
func (u *BillingPaymentUseCase) providerRequest(inv entities.Invoice, payload json.RawMessage) (json.RawMessage, error) {
	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		if u.settings.Mock {
			return payload, nil
		}
		return nil, ErrInvalidMPPayload
	}

	if !u.settings.Mock {
		if !hasNonEmptyString(req, "payment_method_id") {
			return nil, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(req)
		u.ensurePayerDefaults(req)
		if !hasPayer(req) {
			return nil, ErrInvalidMPPayload
		}
	}
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = inv.InvoiceNumber
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
	}
	req["transaction_amount"] = invoiceAmount(inv)

	b, err := json.Marshal(req)
	if err != nil {
		return payload, nil
	}
	return b, nil
}

func (u *BillingPaymentUseCase) settle(ctx context.Context, inv entities.Invoice, req json.RawMessage) (string, string, json.RawMessage, error) {
	if u.settings.Mock {
		return u.mockPayment(req, inv, invoiceAmount(inv))
	}
	id, status, resp, err := u.gateway.CreatePayment(ctx, req)
	if err != nil {
		log.Printf("[payment][usecase] gateway failed invoice=%s err=%v", inv.InvoiceNumber, err)
		return "", "", nil, classifyGatewayError(err)
	}
	log.Printf("[payment][usecase] gateway answered invoice=%s provider_payment_id=%s provider_status=%s", inv.InvoiceNumber, id, status)
	return id, status, resp, nil
}

func invoiceAmount(inv entities.Invoice) float64 {
	amount, _ := inv.Total.Float64()
	return amount
}

func (u *BillingPaymentUseCase) mockPayment(payload json.RawMessage, inv entities.Invoice, amount float64) (string, string, json.RawMessage, error) {
	now := u.now()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	if resp == nil {
		resp = map[string]any{}
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now.Format(time.RFC3339Nano)
	resp["date_approved"] = now.Format(time.RFC3339Nano)
	if _, ok := resp["external_reference"]; !ok {
		resp["external_reference"] = inv.InvoiceNumber
	}
	resp["transaction_amount"] = amount
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills payer.email only when neither id nor email were sent.
func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	if m["payer"] == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(u.settings.TestPayerEmail); email != "" {
		payer["email"] = email
	} else if u.settings.sandbox() {
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email.
func (u *BillingPaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !u.settings.sandbox() {
		return
	}
	userID := strings.TrimSpace(u.settings.TestPayerUserID)
	email := strings.TrimSpace(u.settings.TestPayerEmail)
	if userID == "" || email == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != userID {
		return
	}
	payer["email"] = email
	delete(payer, "id")
	log.Printf("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidPaymentInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}
