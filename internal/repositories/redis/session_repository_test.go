package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_UnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	repo := NewSessionRepository(client)

	err := repo.Revoke(context.Background(), "jti", time.Minute)
	assert.Error(t, err)

	_, err = repo.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestSessionRepository_NonPositiveTTLIsNoop(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	assert.NoError(t, NewSessionRepository(client).Revoke(context.Background(), "jti", 0))
}

// Runs against a real server when REDIS_ADDR is set.
func TestSessionRepository_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()
	repo := NewSessionRepository(client)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := repo.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, jti, time.Minute))
	revoked, err = repo.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}
