package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists per-session bearer tokens in Redis so sessions survive
// console restarts the same way a browser cookie survives a page reload.
// Key format: session:<sid>:token
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client. Each
// Set refreshes the TTL, so active sessions slide rather than hard-expire.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Get returns the stored token, or an empty string when none exists.
func (s *TokenStore) Get(ctx context.Context, sid string) (string, error) {
	token, err := s.client.Get(ctx, s.key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Set(ctx context.Context, sid, token string) error {
	if err := s.client.Set(ctx, s.key(sid), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

// Delete removes the token. Deleting an absent key is not an error, which is
// what makes session invalidation after concurrent 401s idempotent.
func (s *TokenStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("token delete: %w", err)
	}
	return nil
}

func (s *TokenStore) key(sid string) string {
	return fmt.Sprintf("session:%s:token", sid)
}
