package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

// tokenBytes is the amount of randomness behind every session token.
const tokenBytes = 32

// Registry maps opaque session tokens to user ids.
type Registry interface {
	// Issue creates a new token bound to userID. Existing tokens for the same
	// user stay valid.
	Issue(ctx context.Context, userID uint) (string, error)
	// Resolve returns the user bound to token. ok is false for unknown,
	// revoked or expired tokens.
	Resolve(ctx context.Context, token string) (userID uint, ok bool, err error)
	// Revoke invalidates token. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}

// NewToken returns a URL-safe token carrying 256 bits of randomness.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type sessionEntry struct {
	userID    uint
	expiresAt time.Time
}

func (e sessionEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryRegistry keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between instances.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an in-memory registry. A zero ttl issues tokens
// that never expire.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue implements Registry.
func (r *MemoryRegistry) Issue(_ context.Context, userID uint) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	entry := sessionEntry{userID: userID}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	r.sessions[token] = entry
	return token, nil
}

// Resolve implements Registry.
func (r *MemoryRegistry) Resolve(_ context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	r.mu.RLock()
	entry, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok || entry.expired(r.now()) {
		return 0, false, nil
	}
	return entry.userID, true, nil
}

// Revoke implements Registry.
func (r *MemoryRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweepLocked drops expired sessions. Callers must hold the write lock.
func (r *MemoryRegistry) sweepLocked() {
	if r.ttl <= 0 {
		return
	}
	now := r.now()
	for token, entry := range r.sessions {
		if entry.expired(now) {
			delete(r.sessions, token)
		}
	}
}
