// Package session holds the bearer token used for backend calls.
//
// A Session is created when the CLI or TUI starts and is passed explicitly to
// the API client. It reads the token lazily from a TokenStore and forgets it
// on sign-out or when the backend rejects it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Remove(ctx context.Context) error
}

// Session is the authenticated context for one app session.
type Session struct {
	store TokenStore

	mu     sync.Mutex
	token  string
	loaded bool
}

// New creates a session backed by store.
func New(store TokenStore) *Session {
	return &Session{store: store}
}

// Token returns the bearer token, loading it from the store on first use.
// An empty token means the user is signed out.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.token, nil
	}
	if s.store == nil {
		s.loaded = true
		return "", nil
	}

	tok, err := s.store.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	s.token = tok
	s.loaded = true
	return tok, nil
}

// Invalidate drops the token after the backend answered 401.
// The stored token is removed as well; no redirect happens.
func (s *Session) Invalidate(ctx context.Context) error {
	slog.Warn("session rejected by server, clearing stored token")
	return s.clear(ctx)
}

// SignOut ends the session and removes the stored token.
func (s *Session) SignOut(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if s.store == nil {
		return nil
	}
	if err := s.store.Remove(ctx); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

// MemoryStore is a TokenStore kept in memory.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	removed int
}

// NewMemoryStore creates a store holding token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Token implements TokenStore.
func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Remove implements TokenStore.
func (m *MemoryStore) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.removed++
	return nil
}

// Removed reports how many times Remove was called.
func (m *MemoryStore) Removed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removed
}
