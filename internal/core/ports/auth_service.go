package ports

import (
	"context"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService authenticates accounts and manages their credential lifecycle.
type AuthService interface {
	// Register creates an unverified account and issues a verification code
	// for out-of-band delivery.
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	// Login checks credentials. Failure modes, in order:
	// ErrAccountNotFound, ErrAccountNotVerified, ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	// VerifyEmail consumes a verification code and marks the account verified.
	VerifyEmail(ctx context.Context, email, code string) error
	ChangePassword(ctx context.Context, accountID, current, next string) error
	DeleteAccount(ctx context.Context, accountID string) error
}
