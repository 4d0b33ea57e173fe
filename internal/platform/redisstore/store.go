// Package redisstore keeps short-lived sign-in state in Redis: OAuth state
// values and one-time login sessions.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/service/auth"
	"github.com/redis/go-redis/v9"
)

const (
	statePrefix   = "oauth:state:"
	sessionPrefix = "oauth:login_session:"
)

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Store implements auth.StateStore and auth.SessionStore.
type Store struct {
	client redis.UniversalClient
}

var (
	_ auth.StateStore   = (*Store)(nil)
	_ auth.SessionStore = (*Store)(nil)
)

// New wraps client.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// SaveState stores state until ttl elapses.
func (s *Store) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.SetEx(ctx, statePrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}

// ConsumeState deletes state, reporting whether it was present.
func (s *Store) ConsumeState(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, statePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete state: %w", err)
	}
	return n > 0, nil
}

// SaveSession stores token under sid until ttl elapses.
func (s *Store) SaveSession(ctx context.Context, sid, token string, ttl time.Duration) error {
	if err := s.client.SetEx(ctx, sessionPrefix+sid, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// ConsumeSession atomically reads and deletes the session.
func (s *Store) ConsumeSession(ctx context.Context, sid string) (string, error) {
	token, err := s.client.GetDel(ctx, sessionPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", auth.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis getdel session: %w", err)
	}
	return token, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
