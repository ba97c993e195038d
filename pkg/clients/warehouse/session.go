package warehouse

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Session is the client side login state. It exists only between Login and
// Logout.
type Session struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// SessionStore persists the current session to a file between invocations.
type SessionStore struct {
	path    string
	mu      sync.RWMutex
	current Session
}

// NewSessionStore creates a store backed by path. Call Load to read it.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath returns the session file under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "warehousectl", "session.json"), nil
}

// Load reads the session file. A missing file means logged out.
func (st *SessionStore) Load() error {
	data, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		st.set(Session{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	st.set(s)
	return nil
}

// Current returns the active session and whether one exists.
func (st *SessionStore) Current() (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current, st.current.Valid()
}

// Login stores s as the active session.
func (st *SessionStore) Login(s Session) error {
	if !s.Valid() {
		return fmt.Errorf("session has no token")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	st.set(s)
	return nil
}

// Logout forgets the active session and removes the file.
func (st *SessionStore) Logout() error {
	st.set(Session{})
	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (st *SessionStore) set(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = s
}
