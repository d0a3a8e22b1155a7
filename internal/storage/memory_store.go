package storage

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps values in a map. Used in tests and for throwaway sessions.
type MemoryStore struct {
	values map[string]string
	mutex  sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (string, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	val, ok := ms.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (ms *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	delete(ms.values, key)
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
