package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

var testIdentity = domain.Identity{ID: "acc_1", Email: "alice@example.com", Name: "Alice"}

func TestSessionIssuer_Roundtrip(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)

	token, err := issuer.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := issuer.Read(token)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if claims.ID != "acc_1" || claims.Email != "alice@example.com" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Owner() != domain.OwnerID("acc_1") {
		t.Fatalf("unexpected owner: %s", claims.Owner())
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Fatalf("expiry should be in the future, got %v", claims.ExpiresAt)
	}
}

func TestSessionIssuer_DefaultTTL(t *testing.T) {
	issuer := NewSessionIssuer("secret", 0)
	if issuer.TTL() != defaultSessionTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultSessionTTL, issuer.TTL())
	}
}

func TestSessionIssuer_EmptyToken(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)
	if _, err := issuer.Read(""); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionIssuer_Malformed(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)
	if _, err := issuer.Read("not-a-jwt"); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionIssuer_WrongSecret(t *testing.T) {
	other := NewSessionIssuer("other-secret", time.Hour)
	token, err := other.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer := NewSessionIssuer("secret", time.Hour)
	if _, err := issuer.Read(token); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for wrong secret, got %v", err)
	}
}

func TestSessionIssuer_Expired(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)

	now := time.Now().Add(-2 * time.Hour)
	claims := sessionClaims{
		Email: testIdentity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testIdentity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Read(token); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}
}

func TestSessionIssuer_WrongAlgorithm(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   testIdentity.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Read(token); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for wrong algorithm, got %v", err)
	}
}

func TestSessionIssuer_MissingSubject(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Read(token); !errors.Is(err, ports.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty subject, got %v", err)
	}
}
