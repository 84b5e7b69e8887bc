package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrStatusNotFound  = errors.New("status not found")
	ErrInvalidStatusID = errors.New("invalid status id")
)

// StatusInput is the writable part of a StatusDefinition.
type StatusInput struct {
	Name  string
	Order int
	Kind  entities.StatusKind
	Color string
}

// IStatusLedgerUseCase maintains the single, linear status workflow.
//
// Write-time rules (the store does not enforce them):
//   - at most one end status
//   - a status is never both end and canceled (unrepresentable in StatusKind)

type IStatusLedgerUseCase interface {
	Ledger(ctx context.Context) (entities.StatusLedger, error)
	EnsureDefaults(ctx context.Context) (entities.StatusLedger, error)
	Create(ctx context.Context, in StatusInput) (entities.StatusDefinition, error)
	Update(ctx context.Context, id string, in StatusInput) (entities.StatusDefinition, error)
}

type StatusLedgerUseCase struct {
	repo      interfaces.IStatusRepository
	publisher interfaces.IEventPublisher
	now       func() time.Time
}

var _ IStatusLedgerUseCase = (*StatusLedgerUseCase)(nil)

func NewStatusLedgerUseCase(repo interfaces.IStatusRepository, publisher interfaces.IEventPublisher) *StatusLedgerUseCase {
	return &StatusLedgerUseCase{repo: repo, publisher: publisher, now: utcNow}
}

// Ledger returns the ledger sorted by order.
func (u *StatusLedgerUseCase) Ledger(ctx context.Context) (entities.StatusLedger, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entities.StatusLedger(items).Sorted(), nil
}

// EnsureDefaults seeds the five default statuses when the ledger is empty.
func (u *StatusLedgerUseCase) EnsureDefaults(ctx context.Context) (entities.StatusLedger, error) {
	ledger, err := u.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	if len(ledger) > 0 {
		return ledger, nil
	}

	log.Printf("[ledger][usecase] empty ledger; seeding defaults")
	now := u.now()
	seeded := make(entities.StatusLedger, 0, len(entities.DefaultStatusLedger()))
	for _, s := range entities.DefaultStatusLedger() {
		s.ID = uuid.NewString()
		s.CreatedAt = now
		s.UpdatedAt = now
		created, err := u.repo.Create(ctx, s)
		if err != nil {
			log.Printf("[ledger][usecase] seeding failed name=%q err=%v", s.Name, err)
			return nil, err
		}
		seeded = append(seeded, created)
	}
	return seeded.Sorted(), nil
}

func (u *StatusLedgerUseCase) Create(ctx context.Context, in StatusInput) (entities.StatusDefinition, error) {
	in, err := normalizeStatusInput(in)
	if err != nil {
		return entities.StatusDefinition{}, err
	}

	ledger, err := u.Ledger(ctx)
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	if err := checkSingleEnd(ledger, "", in.Kind); err != nil {
		return entities.StatusDefinition{}, err
	}
	if _, dup := ledger.Find(in.Name); dup {
		log.Printf("[ledger][usecase] duplicate status name accepted name=%q", in.Name)
	}

	now := u.now()
	s := entities.StatusDefinition{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Order:     in.Order,
		Kind:      in.Kind,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	log.Printf("[ledger][usecase] status created id=%s name=%q order=%d kind=%s", created.ID, created.Name, created.Order, created.Kind)
	publishEvent(ctx, u.publisher, entities.EventStatusLedgerChanged, created.ID, created)
	return created, nil
}

func (u *StatusLedgerUseCase) Update(ctx context.Context, id string, in StatusInput) (entities.StatusDefinition, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.StatusDefinition{}, ErrInvalidStatusID
	}
	in, err := normalizeStatusInput(in)
	if err != nil {
		return entities.StatusDefinition{}, err
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	if current.ID == "" {
		return entities.StatusDefinition{}, ErrStatusNotFound
	}

	ledger, err := u.Ledger(ctx)
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	if err := checkSingleEnd(ledger, id, in.Kind); err != nil {
		return entities.StatusDefinition{}, err
	}

	current.Name = in.Name
	current.Order = in.Order
	current.Kind = in.Kind
	current.Color = in.Color
	current.UpdatedAt = u.now()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	if updated.ID == "" {
		return entities.StatusDefinition{}, ErrStatusNotFound
	}
	publishEvent(ctx, u.publisher, entities.EventStatusLedgerChanged, updated.ID, updated)
	return updated, nil
}

func normalizeStatusInput(in StatusInput) (StatusInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, newValidationError("name", "required")
	}
	if in.Kind == "" {
		in.Kind = entities.StatusKindNormal
	}
	if !in.Kind.Valid() {
		return in, newValidationError("kind", "must be normal, end or canceled")
	}
	return in, nil
}

func checkSingleEnd(ledger entities.StatusLedger, editingID string, kind entities.StatusKind) error {
	if kind != entities.StatusKindEnd {
		return nil
	}
	if existing, ok := ledger.EndStatus(editingID); ok {
		return newValidationError("is_end_status", "end status already defined: "+existing.Name)
	}
	return nil
}
