package auth

import (
	"context"
	"time"

	"bjustcoin/internal/cache"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// SessionStoreInterface caches session-token → user-id resolutions so the
// identity middleware does not hit the database on every request. The
// database row remains the source of truth; a cache miss falls back to it.
type SessionStoreInterface interface {
	Put(ctx context.Context, token string, userID uint) error
	Lookup(ctx context.Context, token string) (userID uint, ok bool)
	Invalidate(ctx context.Context, token string) error
}

// SessionStore is the redis-backed SessionStoreInterface.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Put caches a token resolution with TTL.
func (s *SessionStore) Put(ctx context.Context, token string, userID uint) error {
	return s.cache.SetJSON(ctx, sessionKeyPrefix+token, userID, sessionTTL)
}

// Lookup resolves a cached token. ok is false on miss or redis outage.
func (s *SessionStore) Lookup(ctx context.Context, token string) (uint, bool) {
	var userID uint
	if !s.cache.GetJSON(ctx, sessionKeyPrefix+token, &userID) {
		return 0, false
	}
	return userID, true
}

// Invalidate drops a cached token, e.g. on logout or blocking.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
