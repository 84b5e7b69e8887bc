package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingAccessToken = errors.New("mercado pago access token is empty")
	ErrGatewayNotReady    = errors.New("mercado pago gateway not configured")
)

// MercadoPagoGateway settles invoices through the Mercado Pago payments API.
// It is only built outside mock mode; in mock mode the use case never reaches a gateway.
type MercadoPagoGateway struct {
	client payment.Client
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}
	log.Printf("[payment][gateway] client ready")
	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// CreatePayment forwards the invoice payment payload as-is and returns the provider id,
// the provider status and the raw provider response.
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
	if g == nil || g.client == nil {
		return "", "", nil, ErrGatewayNotReady
	}

	var req payment.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return "", "", nil, fmt.Errorf("decode payment payload: %w", err)
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] provider rejected create err=%v", err)
		return "", "", nil, err
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, fmt.Errorf("encode provider response: %w", err)
	}

	providerID := fmt.Sprint(resp.ID)
	log.Printf("[payment][gateway] created provider_payment_id=%s status=%s", providerID, resp.Status)
	return providerID, resp.Status, raw, nil
}
