package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// sessionClaims is the JWT payload: public identity plus the registered
// iat/exp pair managed by the library.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionIssuer mints and verifies HS256 session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

// Issue signs a session token for the given identity.
func (s *SessionIssuer) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:  identity.Name,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Read recovers the identity from a session token. Every failure mode —
// malformed, wrong signature, wrong algorithm, expired — collapses into
// ports.ErrNoSession so callers can treat the request as anonymous.
func (s *SessionIssuer) Read(token string) (*ports.SessionClaims, error) {
	if token == "" {
		return nil, ports.ErrNoSession
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, ports.ErrNoSession
	}

	out := &ports.SessionClaims{
		Identity: domain.Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name},
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
