package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type BankAccountService struct {
	repo ports.BankAccountRepository
	log  zerolog.Logger
}

func NewBankAccountService(repo ports.BankAccountRepository, log zerolog.Logger) *BankAccountService {
	return &BankAccountService{repo: repo, log: log}
}

func (s *BankAccountService) Create(ctx context.Context, caller domain.OwnerID, in ports.BankAccountInput) (*domain.BankAccount, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	acc := &domain.BankAccount{
		Name:           in.Name,
		BankName:       in.BankName,
		AccountNumber:  in.AccountNumber,
		OpeningBalance: in.OpeningBalance,
		Owner:          caller,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, acc)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Msg("bank account created")
	return created, nil
}

func (s *BankAccountService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.BankAccount, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *BankAccountService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery) (ports.Page[*domain.BankAccount], error) {
	if caller.IsZero() {
		return ports.Page[*domain.BankAccount]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q)
	if err != nil {
		return ports.Page[*domain.BankAccount]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *BankAccountService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.BankAccountInput) (*domain.BankAccount, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	acc, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(acc, caller); err != nil {
		return nil, err
	}

	acc.Name = in.Name
	acc.BankName = in.BankName
	acc.AccountNumber = in.AccountNumber
	acc.OpeningBalance = in.OpeningBalance
	acc.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *BankAccountService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	acc, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(acc, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
