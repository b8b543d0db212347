package repository

import (
	"context"
	"sync"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// MemoryRepository is an in-memory implementation of the Repository interface.
type MemoryRepository struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemoryRepository creates a MemoryRepository seeded with items.
func NewMemoryRepository(items map[string]string) *MemoryRepository {
	r := &MemoryRepository{items: make(map[string]string, len(items))}
	for k, v := range items {
		r.items[k] = v
	}
	return r
}

// Close is a no-op for the memory repository.
func (r *MemoryRepository) Close() error {
	return nil
}

// Set stores value under key.
func (r *MemoryRepository) Set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
}

// Lookup returns the value stored under key.
func (r *MemoryRepository) Lookup(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[key]
	if !ok {
		return "", entities.ErrKeyNotFound
	}
	return v, nil
}
