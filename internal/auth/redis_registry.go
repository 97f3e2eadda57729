package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const sessionKeyPrefix = "session:"

// KeyValueStore is the subset of cache.Client the Redis registry needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisRegistry stores sessions in Redis so they survive restarts and are
// shared between instances.
type RedisRegistry struct {
	store KeyValueStore
	ttl   time.Duration
}

// Ensure RedisRegistry implements Registry
var _ Registry = (*RedisRegistry)(nil)

// NewRedisRegistry creates a registry backed by store. A zero ttl stores
// sessions without expiry.
func NewRedisRegistry(store KeyValueStore, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{store: store, ttl: ttl}
}

// Issue implements Registry.
func (r *RedisRegistry) Issue(ctx context.Context, userID uint) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	payload := []byte(strconv.FormatUint(uint64(userID), 10))
	if err := r.store.Set(ctx, sessionKeyPrefix+token, payload, r.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve implements Registry. Storage failures are returned as errors so
// callers can tell an outage apart from an unknown token.
func (r *RedisRegistry) Resolve(ctx context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	data, err := r.store.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return 0, false, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return 0, false, nil
	}

	userID, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid session payload: %w", err)
	}
	return uint(userID), true, nil
}

// Revoke implements Registry.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.store.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
