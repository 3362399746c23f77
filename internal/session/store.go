package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spec-kit/society-portal/internal/domain"
)

// Principal is the authenticated session record: identity, role and bearer
// token. It is owned exclusively by the Store.
type Principal struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	FlatNumber string      `json:"flatNumber,omitempty"`
	Token      string      `json:"token"`
}

// Authenticated reports whether the principal carries a usable token. A
// principal without a token must never be treated as authenticated.
func (p *Principal) Authenticated() bool {
	return p != nil && p.Token != ""
}

// Store persists the principal as a single JSON file so a session survives
// process restarts. Writes are serialized; every mutation immediately
// rewrites the file.
type Store struct {
	mu        sync.Mutex
	path      string
	principal *Principal
	loaded    bool
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the current principal, or false when no authenticated session
// exists.
func (s *Store) Get() (*Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, false
	}
	if !s.principal.Authenticated() {
		return nil, false
	}
	copied := *s.principal
	return &copied, true
}

// Set replaces the principal and persists it.
func (s *Store) Set(p *Principal) error {
	if !p.Authenticated() {
		return errors.New("refusing to store principal without token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *p
	s.principal = &copied
	s.loaded = true

	raw, err := json.Marshal(s.principal)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear destroys the session in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.principal = nil
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var p Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		// A corrupt session file behaves like no session.
		return nil
	}
	s.principal = &p
	return nil
}
