package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type BudgetService struct {
	repo ports.BudgetRepository
	log  zerolog.Logger
}

func NewBudgetService(repo ports.BudgetRepository, log zerolog.Logger) *BudgetService {
	return &BudgetService{repo: repo, log: log}
}

func (s *BudgetService) Create(ctx context.Context, caller domain.OwnerID, in ports.BudgetInput) (*domain.Budget, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	b := &domain.Budget{
		Name:       in.Name,
		Amount:     in.Amount,
		Period:     in.Period,
		CategoryID: in.CategoryID,
		Owner:      caller,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Insert(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("period", string(created.Period)).Msg("budget created")
	return created, nil
}

func (s *BudgetService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Budget, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *BudgetService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery) (ports.Page[*domain.Budget], error) {
	if caller.IsZero() {
		return ports.Page[*domain.Budget]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q)
	if err != nil {
		return ports.Page[*domain.Budget]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *BudgetService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.BudgetInput) (*domain.Budget, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	b, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(b, caller); err != nil {
		return nil, err
	}

	b.Name = in.Name
	b.Amount = in.Amount
	b.Period = in.Period
	b.CategoryID = in.CategoryID
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	b, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(b, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
