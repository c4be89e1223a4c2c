package httpadapter

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps server-side sessions in memory, keyed by the
// SHA-256 of the opaque token so a memory dump never exposes usable
// tokens. Sessions map to the owning account id and expire after the
// configured TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionData
	ttl      time.Duration

	now func() time.Time
}

type sessionData struct {
	UserID    int64
	ExpiresAt time.Time
}

func sessionHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewSessionStore creates a store with the given session lifetime.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionData),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a new session token for the account.
func (s *SessionStore) Create(userID int64) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionHash(token)] = sessionData{
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return token
}

// Resolve returns the account id a valid token belongs to. Expired
// sessions are dropped on access.
func (s *SessionStore) Resolve(token string) (int64, bool) {
	key := sessionHash(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[key]
	if !ok {
		return 0, false
	}
	if s.now().After(data.ExpiresAt) {
		delete(s.sessions, key)
		return 0, false
	}
	return data.UserID, true
}

// Delete removes a session, ending the login.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionHash(token))
}
