package ports

import (
	"errors"
	"time"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
)

// ErrNoSession is returned by SessionIssuer.Read for any token that cannot be
// trusted: missing, malformed, tampered, or expired. Callers treat it as
// "anonymous request", never as a fault.
var ErrNoSession = errors.New("no valid session")

// SessionClaims is the identity recovered from a valid session token.
type SessionClaims struct {
	domain.Identity
	ExpiresAt time.Time
}

// Owner returns the claims' account id as a normalized owner identifier.
func (c *SessionClaims) Owner() domain.OwnerID {
	return domain.OwnerID(c.ID)
}

// SessionIssuer mints and reads signed session tokens. Read is a pure
// function of (token, signing secret): it performs no store lookups, so a
// token cannot be revoked before its expiry.
type SessionIssuer interface {
	Issue(identity domain.Identity) (string, error)
	Read(token string) (*SessionClaims, error)
	// TTL is the maximum session lifetime, used to size the cookie Max-Age.
	TTL() time.Duration
}
