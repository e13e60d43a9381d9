package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mantatrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	return NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	s := testSessionStore(t)

	user := models.User{
		ID:             "u-1",
		Name:           "Demo Buyer",
		Email:          "demo@example.com",
		Market:         "Manila Market",
		Location:       "Manila",
		ContactVisible: true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.Save(user))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Market, got.Market)
}

func TestSessionLoadMissingFile(t *testing.T) {
	s := testSessionStore(t)

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestSessionCorruptedBlobReadsAsLoggedOut(t *testing.T) {
	s := testSessionStore(t)

	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0o600))

	_, ok := s.Load()
	assert.False(t, ok)

	// The corrupted blob is dropped
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionClear(t *testing.T) {
	s := testSessionStore(t)

	require.NoError(t, s.Save(models.User{ID: "u-1", Email: "demo@example.com"}))
	require.NoError(t, s.Clear())

	_, ok := s.Load()
	assert.False(t, ok)

	// Clearing an already-empty session is fine
	require.NoError(t, s.Clear())
}

func TestSessionPasswordNeverMirrored(t *testing.T) {
	s := testSessionStore(t)

	user := models.User{ID: "u-1", Email: "demo@example.com", Password: "hash"}
	require.NoError(t, s.Save(user))

	blob, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "hash")

	got, ok := s.Load()
	require.True(t, ok)
	assert.Empty(t, got.Password)
}
