//go:build integration

package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := NewClient(config.RedisConfig{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	s := New(client)
	require.NoError(t, s.Ping(context.Background()))
	return s
}

func TestStateSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	state := uuid.NewString()

	require.NoError(t, s.SaveState(ctx, state, time.Minute))

	ok, err := s.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateExpires(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	state := uuid.NewString()

	require.NoError(t, s.SaveState(ctx, state, time.Second))
	time.Sleep(1500 * time.Millisecond)

	ok, err := s.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sid := uuid.NewString()

	require.NoError(t, s.SaveSession(ctx, sid, "jwt-token", time.Minute))

	token, err := s.ConsumeSession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	_, err = s.ConsumeSession(ctx, sid)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
