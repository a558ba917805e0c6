package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the client-side persistence the dashboard got from the browser:
// the cookie jar and sessionStorage. Keys are flat names like "cookies" or
// "seller-form-data".
type Storage interface {
	// Save stores the value under key, replacing any previous value
	Save(ctx context.Context, key string, reader io.Reader) error

	// Get retrieves the value for key; ErrNotFound if absent
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if key is present
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds storage configuration
type Config struct {
	Type     string // local, memory
	BasePath string // For local storage
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ReadAll is Get followed by io.ReadAll.
func ReadAll(ctx context.Context, s Storage, key string) ([]byte, error) {
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
