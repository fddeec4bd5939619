// Package storage abstracts the object store holding uploaded files
// (student documents, gallery images).
package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the object store interface. Keys are opaque slash-separated
// paths chosen by the caller.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PresignedGetURL returns a time-limited URL for downloading the object.
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
