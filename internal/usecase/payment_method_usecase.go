package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
	ErrInvalidPaymentMethodID = errors.New("invalid payment method id")
)

type NewPaymentMethod struct {
	Name     string
	Provider string
	Active   bool
}

type IPaymentMethodUseCase interface {
	Create(ctx context.Context, in NewPaymentMethod) (entities.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (entities.PaymentMethod, error)
	List(ctx context.Context) ([]entities.PaymentMethod, error)
}

type PaymentMethodUseCase struct {
	repo interfaces.IPaymentMethodRepository
	now  func() time.Time
}

var _ IPaymentMethodUseCase = (*PaymentMethodUseCase)(nil)

func NewPaymentMethodUseCase(repo interfaces.IPaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{repo: repo, now: utcNow}
}

func (u *PaymentMethodUseCase) Create(ctx context.Context, in NewPaymentMethod) (entities.PaymentMethod, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.PaymentMethod{}, newValidationError("name", "required")
	}
	pm := entities.PaymentMethod{
		ID:        uuid.NewString(),
		Name:      name,
		Provider:  strings.TrimSpace(in.Provider),
		Active:    in.Active,
		CreatedAt: u.now(),
	}
	return u.repo.Create(ctx, pm)
}

func (u *PaymentMethodUseCase) GetByID(ctx context.Context, id string) (entities.PaymentMethod, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentMethod{}, ErrInvalidPaymentMethodID
	}
	pm, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentMethod{}, err
	}
	if pm.ID == "" {
		return entities.PaymentMethod{}, ErrPaymentMethodNotFound
	}
	return pm, nil
}

func (u *PaymentMethodUseCase) List(ctx context.Context) ([]entities.PaymentMethod, error) {
	return u.repo.List(ctx)
}
