package store

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"mantatrack/models"
)

// sessionKey is the single fixed key the logged-in user is mirrored under,
// the same key the browser build uses in local storage.
const sessionKey = "mantatrack_user"

// SessionStore mirrors the active session to a small JSON file, standing in
// for browser local storage. It holds at most one blob: the logged-in user.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore returns a session store backed by the file at path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Save writes the user blob. Called on login, signup and profile update.
func (s *SessionStore) Save(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(map[string]models.User{sessionKey: user})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, blob, 0o600)
}

// Load reads back the mirrored session. A missing or corrupted blob means
// "no session": the file is dropped and ok is false, nothing is surfaced.
func (s *SessionStore) Load() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if err != nil {
		return models.User{}, false
	}

	var data map[string]models.User
	if err := json.Unmarshal(blob, &data); err != nil {
		log.Printf("discarding corrupted session blob: %v", err)
		os.Remove(s.path)
		return models.User{}, false
	}
	user, ok := data[sessionKey]
	if !ok || user.ID == "" {
		os.Remove(s.path)
		return models.User{}, false
	}
	return user, true
}

// Clear drops the mirrored session. Called on logout.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
