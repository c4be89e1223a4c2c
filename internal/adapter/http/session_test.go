package httpadapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionRoundtrip(t *testing.T) {
	store := NewSessionStore(time.Hour)

	token := store.Create(7)
	require.NotEmpty(t, token)

	id, ok := store.Resolve(token)
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	store.Delete(token)
	_, ok = store.Resolve(token)
	require.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(time.Hour)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	token := store.Create(7)

	current = current.Add(59 * time.Minute)
	_, ok := store.Resolve(token)
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = store.Resolve(token)
	require.False(t, ok)

	// expired entries are dropped, not just hidden
	store.mu.RLock()
	defer store.mu.RUnlock()
	require.Empty(t, store.sessions)
}

func TestSessionTokensAreOpaque(t *testing.T) {
	store := NewSessionStore(time.Hour)
	token := store.Create(7)

	store.mu.RLock()
	defer store.mu.RUnlock()
	_, stored := store.sessions[token]
	require.False(t, stored, "raw token must not be a map key")
	_, hashed := store.sessions[sessionHash(token)]
	require.True(t, hashed)
}

func TestResolveUnknownToken(t *testing.T) {
	store := NewSessionStore(time.Hour)
	_, ok := store.Resolve("not-a-token")
	require.False(t, ok)
}
