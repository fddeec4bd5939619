// Package memory provides an in-memory object store for development and
// tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

type object struct {
	contentType string
	data        []byte
}

// Store is a mutex-guarded in-memory object store.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

// Put uploads an object under the given key.
func (s *Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	data, err := io.ReadAll(io.LimitReader(body, size))
	if err != nil {
		return fmt.Errorf("read object body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{contentType: contentType, data: data}
	return nil
}

// Delete removes an object. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// PresignedGetURL returns a synthetic URL; the in-memory store has no HTTP
// surface, so the URL only identifies the object.
func (s *Store) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", apperrors.NotFound("object", key)
	}
	return "memory://" + key, nil
}

// Get returns a stored object's content type and data. Tests use it to
// verify uploads.
func (s *Store) Get(key string) (string, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.contentType, obj.data, ok
}
