package interfaces

import (
	"context"

	"workorder_invoicing/internal/domain/entities"
)

type IPaymentMethodRepository interface {
	Create(ctx context.Context, pm entities.PaymentMethod) (entities.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (entities.PaymentMethod, error)
	List(ctx context.Context) ([]entities.PaymentMethod, error)
}
