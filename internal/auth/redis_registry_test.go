package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapi/internal/cache"
)

var _ KeyValueStore = (*cache.Client)(nil)

type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.data[key], nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.data, key)
	return nil
}

func TestRedisRegistry_IssueResolveRevoke(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewRedisRegistry(store, 30*time.Minute)

	token, err := r.Issue(ctx, 42)
	require.NoError(t, err)

	key := sessionKeyPrefix + token
	assert.Equal(t, []byte("42"), store.data[key])
	assert.Equal(t, 30*time.Minute, store.ttls[key])

	userID, ok, err := r.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, r.Revoke(ctx, token))

	_, ok, err = r.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRegistry_UnknownToken(t *testing.T) {
	r := NewRedisRegistry(newFakeStore(), 0)

	_, ok, err := r.Resolve(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRegistry_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.err = errors.New("connection refused")
	r := NewRedisRegistry(store, 0)

	_, err := r.Issue(ctx, 1)
	assert.Error(t, err)

	_, ok, err := r.Resolve(ctx, "abc")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, r.Revoke(ctx, "abc"))
}

func TestRedisRegistry_CorruptPayload(t *testing.T) {
	store := newFakeStore()
	store.data[sessionKeyPrefix+"tok"] = []byte("not-a-number")
	r := NewRedisRegistry(store, 0)

	_, ok, err := r.Resolve(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, ok)
}
