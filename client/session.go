package client

import (
	"context"
	"sync"
)

// Session holds the process-wide resolved user, derived from the stored
// token. Mutations are last-write-wins under the mutex.
type Session struct {
	mu       sync.Mutex
	client   *Client
	store    Store
	user     *User
	resolved bool
}

// NewSession creates an unresolved session.
func NewSession(c *Client, store Store) *Session {
	return &Session{client: c, store: store}
}

// Bootstrap resolves the session from the stored token. A failed profile
// fetch discards the token and reverts to anonymous rather than failing:
// an invalid or expired token is a silent logout, not an error.
func (s *Session) Bootstrap(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.resolved = true
		s.mu.Unlock()
	}()

	token, ok := s.store.Get(KeyToken)
	if !ok || token == "" {
		return
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.store.Delete(KeyToken)
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, and sets the user.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	user, token, err := s.client.LoginWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.store.Set(KeyToken, token)
	s.mu.Lock()
	s.user = user
	s.resolved = true
	s.mu.Unlock()
	return user, nil
}

// Logout clears the token, every one-shot key, and the in-memory user.
func (s *Session) Logout() {
	s.store.Delete(KeyToken)
	s.store.Delete(KeyRedirectPath)
	s.store.Delete(KeyLoginCallback)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns the resolved user, or nil when anonymous.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Resolved reports whether Bootstrap has completed.
func (s *Session) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}
