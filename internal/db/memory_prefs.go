package db

import (
	"context"
	"sync"
)

// MemoryPrefs keeps preferences for the life of the process only.
type MemoryPrefs struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: map[string][]byte{}}
}

func (m *MemoryPrefs) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryPrefs) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.values[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryPrefs) Close() error { return nil }
