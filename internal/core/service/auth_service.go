package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// VerificationStore abstracts the one-time verification code store (Redis).
type VerificationStore interface {
	Save(ctx context.Context, email, code string) error
	// Consume atomically checks and deletes the code; a code is single-use.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// AuthService implements registration, credential verification and the
// account lifecycle.
type AuthService struct {
	repo  ports.AccountRepository
	codes VerificationStore
	log   zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, codes VerificationStore, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codes: codes, log: log}
}

// Register creates an unverified account and stores a verification code for
// out-of-band delivery.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	code := uuid.NewString()
	if err := s.codes.Save(ctx, created.Email, code); err != nil {
		s.log.Error().Err(err).Str("email", created.Email).Msg("failed to store verification code")
		return nil, err
	}
	// The mail relay picks codes up out-of-band; surfaced at debug for local runs.
	s.log.Debug().Str("email", created.Email).Str("code", code).Msg("verification code issued")
	s.log.Info().Str("account_id", created.ID).Msg("account registered")

	return created, nil
}

// Login checks an (email, password) pair. Failure order is fixed:
// unknown email, then unverified account, then password mismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	if !account.Verified {
		return domain.Identity{}, domain.ErrAccountNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	return account.Identity(), nil
}

// VerifyEmail consumes a verification code and flips the account's flag.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return domain.ErrInvalidCode
	}

	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCode
	}

	if err := s.repo.SetVerified(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("account verified")
	return nil
}

// ChangePassword replaces the stored hash after checking the current password.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, accountID, string(hash))
}

// DeleteAccount removes the account record.
func (s *AuthService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.repo.Delete(ctx, accountID); err != nil {
		return err
	}
	s.log.Info().Str("account_id", accountID).Msg("account deleted")
	return nil
}
