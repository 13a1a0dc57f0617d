package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore holds collections in memory. Used in tests and for ephemeral runs.
// Values round-trip through JSON so it behaves like the file store.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: map[string][]byte{}}
}

func (m *MemStore) Load(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[key]
	if !ok {
		return ErrNotFound
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}

	return nil
}

func (m *MemStore) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data

	return nil
}
