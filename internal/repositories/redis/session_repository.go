// Package redis stores revoked session token ids in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	goredis "github.com/redis/go-redis/v9"
)

var _ repositories.SessionRevocationStore = (*SessionRepository)(nil)

const keyPrefix = "revoked_session:"

// SessionRepository keeps one key per revoked token, expiring with the token itself
type SessionRepository struct {
	client goredis.Cmdable
}

func NewSessionRepository(client goredis.Cmdable) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check session revocation: %w", err)
	}
	return n > 0, nil
}
