package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by email
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneAccount(account)
	r.nextID++
	copy.ID = string(rune('a' + r.nextID))
	r.accounts[copy.Email] = cloneAccount(copy)
	return copy, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) SetVerified(_ context.Context, email string) error {
	a, ok := r.accounts[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Verified = true
	return nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, a := range r.accounts {
		if a.ID == id {
			a.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	for email, a := range r.accounts {
		if a.ID == id {
			delete(r.accounts, email)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

type stubCodeStore struct {
	codes map[string]string
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string)}
}

func (s *stubCodeStore) Save(_ context.Context, email, code string) error {
	s.codes[email] = code
	return nil
}

func (s *stubCodeStore) Consume(_ context.Context, email, code string) (bool, error) {
	stored, ok := s.codes[email]
	if !ok {
		return false, nil
	}
	delete(s.codes, email)
	return stored == code, nil
}

func newTestAuthService() (*AuthService, *stubAccountRepo, *stubCodeStore) {
	repo := newStubAccountRepo()
	codes := newStubCodeStore()
	return NewAuthService(repo, codes, zerolog.Nop()), repo, codes
}

func register(t *testing.T, svc *AuthService, email, password string) *domain.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return account
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, codes := newTestAuthService()

	account := register(t, svc, "alice@example.com", "s3cretpass")

	if account.Verified {
		t.Fatalf("new account must start unverified")
	}
	if account.PasswordHash == "s3cretpass" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if _, ok := codes.codes["alice@example.com"]; !ok {
		t.Fatalf("expected verification code stored")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc, "bob@example.com", "password1")

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Bob", Email: "bob@example.com", Password: "password2",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthService_Login_UnverifiedBeforePasswordCheck(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc, "carol@example.com", "s3cretpass")

	// Even with the correct password, an unverified account is rejected with
	// the not-verified error, not invalid credentials.
	_, err := svc.Login(context.Background(), "carol@example.com", "s3cretpass")
	if !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	register(t, svc, "dave@example.com", "s3cretpass")
	_ = repo.SetVerified(context.Background(), "dave@example.com")

	_, err := svc.Login(context.Background(), "dave@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	created := register(t, svc, "erin@example.com", "s3cretpass")
	_ = repo.SetVerified(context.Background(), "erin@example.com")

	identity, err := svc.Login(context.Background(), "erin@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.ID != created.ID || identity.Email != "erin@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	svc, repo, codes := newTestAuthService()
	register(t, svc, "frank@example.com", "s3cretpass")
	code := codes.codes["frank@example.com"]

	if err := svc.VerifyEmail(context.Background(), "frank@example.com", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	account, _ := repo.FindByEmail(context.Background(), "frank@example.com")
	if !account.Verified {
		t.Fatalf("account should be verified")
	}

	// Codes are single-use.
	if err := svc.VerifyEmail(context.Background(), "frank@example.com", code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode on reuse, got %v", err)
	}
}

func TestAuthService_VerifyEmail_WrongCode(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	register(t, svc, "grace@example.com", "s3cretpass")

	if err := svc.VerifyEmail(context.Background(), "grace@example.com", "bogus"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	account, _ := repo.FindByEmail(context.Background(), "grace@example.com")
	if account.Verified {
		t.Fatalf("account must stay unverified after a bad code")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	created := register(t, svc, "henry@example.com", "oldpassword")
	_ = repo.SetVerified(context.Background(), "henry@example.com")

	if err := svc.ChangePassword(context.Background(), created.ID, "wrong", "newpassword"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "oldpassword", "newpassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "henry@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "henry@example.com", "oldpassword"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	svc, _, _ := newTestAuthService()
	created := register(t, svc, "iris@example.com", "s3cretpass")

	if err := svc.DeleteAccount(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Login(context.Background(), "iris@example.com", "s3cretpass"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound after delete, got %v", err)
	}
}
