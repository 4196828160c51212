package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no snapshot exists under a key.
var ErrNotFound = errors.New("snapshot: not found")

// ErrBadKey is returned for keys a backend cannot store safely.
var ErrBadKey = errors.New("snapshot: invalid key")

// Store is the interface for snapshot storage backends.
// Implement this interface to use S3, a database, or other storage.
type Store interface {
	// Save writes data under key, overwriting any previous snapshot.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the snapshot stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the snapshot under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
