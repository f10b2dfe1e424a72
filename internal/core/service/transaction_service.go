package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type TransactionService struct {
	repo ports.TransactionRepository
	log  zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, log zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, log: log}
}

func (s *TransactionService) Create(ctx context.Context, caller domain.OwnerID, in ports.TransactionInput) (*domain.Transaction, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		Type:          in.Type,
		Amount:        in.Amount,
		Date:          in.Date,
		BankAccountID: in.BankAccountID,
		Notes:         in.Notes,
		Owner:         caller,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("type", string(created.Type)).Msg("transaction recorded")
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Transaction, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *TransactionService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery, r ports.DateRange) (ports.Page[*domain.Transaction], error) {
	if caller.IsZero() {
		return ports.Page[*domain.Transaction]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q, r)
	if err != nil {
		return ports.Page[*domain.Transaction]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *TransactionService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.TransactionInput) (*domain.Transaction, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	t, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(t, caller); err != nil {
		return nil, err
	}

	t.Type = in.Type
	t.Amount = in.Amount
	t.Date = in.Date
	t.BankAccountID = in.BankAccountID
	t.Notes = in.Notes
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	t, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(t, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
