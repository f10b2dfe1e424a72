package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type ExpenseService struct {
	repo ports.ExpenseRepository
	log  zerolog.Logger
}

func NewExpenseService(repo ports.ExpenseRepository, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, log: log}
}

func (s *ExpenseService) Create(ctx context.Context, caller domain.OwnerID, in ports.ExpenseInput) (*domain.Expense, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	e := &domain.Expense{
		Amount:          in.Amount,
		Date:            in.Date,
		CategoryID:      in.CategoryID,
		PaymentMethodID: in.PaymentMethodID,
		TagIDs:          in.TagIDs,
		Notes:           in.Notes,
		Owner:           caller,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("amount", created.Amount.String()).Msg("expense recorded")
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Expense, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *ExpenseService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery, r ports.DateRange) (ports.Page[*domain.Expense], error) {
	if caller.IsZero() {
		return ports.Page[*domain.Expense]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q, r)
	if err != nil {
		return ports.Page[*domain.Expense]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *ExpenseService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	e, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(e, caller); err != nil {
		return nil, err
	}

	e.Amount = in.Amount
	e.Date = in.Date
	e.CategoryID = in.CategoryID
	e.PaymentMethodID = in.PaymentMethodID
	e.TagIDs = in.TagIDs
	e.Notes = in.Notes
	e.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	e, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(e, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
