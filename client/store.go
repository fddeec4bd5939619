// Package client is the typed SDK for the fan-club API: an HTTP wrapper
// with bearer injection, a session layer over a one-shot state store, the
// post-OAuth redirect resolver, and the membership submission flow with
// bounded retry.
package client

import "sync"

// State store keys. token persists until logout; the others are one-shot
// values consumed by the redirect resolver.
const (
	KeyToken         = "token"
	KeyRedirectPath  = "redirectPath"
	KeyLoginCallback = "loginCallback"
)

// Store is the client-side state store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)

	// ReadAndClear returns the value and removes it in one step, so no
	// other reader can observe it afterwards.
	ReadAndClear(key string) (string, bool)
}

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *MemoryStore) ReadAndClear(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	delete(s.values, key)
	return v, ok
}
