package repository

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/port"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStorage returns a storage that lives as long as the process.
// It is the in-memory stand-in used by tests and by the "memory" storage driver.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

var _ port.CartStorage = (*MemoryStorage)(nil)

func (s *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.items[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}

	return bytes.Clone(payload), nil
}

func (s *MemoryStorage) Save(_ context.Context, key string, payload []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = bytes.Clone(payload)

	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[key]
	delete(s.items, key)

	return ok, nil
}
