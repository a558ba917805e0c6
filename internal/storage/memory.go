package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStorage keeps values for the lifetime of the process, like sessionStorage in a tab.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.items[key]
	s.mu.RUnlock()
	return ok, nil
}
