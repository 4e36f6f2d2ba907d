package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
)

var _ repositories.SessionRevocationStore = (*SessionRepository)(nil)

// SessionRepository keeps revoked token ids with their expiry. Expired entries
// are dropped lazily on lookup.
type SessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = r.now().Add(ttl)
	return nil
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(exp) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
