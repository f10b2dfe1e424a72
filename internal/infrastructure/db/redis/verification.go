package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeTTL = 24 * time.Hour

// VerificationStore holds one-time email verification codes in Redis.
// Key format: verify:<email>
type VerificationStore struct {
	client *redis.Client
}

// NewVerificationStore creates a VerificationStore wrapping the given client.
func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// Save stores the code for email, replacing any previous one. Codes expire
// after codeTTL.
func (s *VerificationStore) Save(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, s.key(email), code, codeTTL).Err(); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

// Consume checks the stored code and deletes it in one round trip, so a code
// can be used at most once.
func (s *VerificationStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.GetDel(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("consume verification code: %w", err)
	}
	return stored == code, nil
}

func (s *VerificationStore) key(email string) string {
	return "verify:" + email
}
