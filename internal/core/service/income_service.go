package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type IncomeService struct {
	repo ports.IncomeRepository
	log  zerolog.Logger
}

func NewIncomeService(repo ports.IncomeRepository, log zerolog.Logger) *IncomeService {
	return &IncomeService{repo: repo, log: log}
}

func (s *IncomeService) Create(ctx context.Context, caller domain.OwnerID, in ports.IncomeInput) (*domain.Income, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	i := &domain.Income{
		Amount:        in.Amount,
		Date:          in.Date,
		SourceID:      in.SourceID,
		BankAccountID: in.BankAccountID,
		Notes:         in.Notes,
		Owner:         caller,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, i)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("amount", created.Amount.String()).Msg("income recorded")
	return created, nil
}

func (s *IncomeService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Income, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *IncomeService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery, r ports.DateRange) (ports.Page[*domain.Income], error) {
	if caller.IsZero() {
		return ports.Page[*domain.Income]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q, r)
	if err != nil {
		return ports.Page[*domain.Income]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *IncomeService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.IncomeInput) (*domain.Income, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	i, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(i, caller); err != nil {
		return nil, err
	}

	i.Amount = in.Amount
	i.Date = in.Date
	i.SourceID = in.SourceID
	i.BankAccountID = in.BankAccountID
	i.Notes = in.Notes
	i.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *IncomeService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	i, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(i, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
