package persist

import (
	"context"
	"reflect"
	"sync"

	"github.com/spetersoncode/flux"
	"github.com/spetersoncode/flux/internal/snapshot"
)

var stateType = reflect.TypeOf(flux.State{})

// MemoryAdapter provides thread-safe in-memory storage.
type MemoryAdapter struct {
	mu    sync.RWMutex
	data  map[string]any
	saves int
}

// NewMemoryAdapter creates a new in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Load returns a copy of the saved data.
func (m *MemoryAdapter) Load(_ context.Context) (map[string]any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, false, nil
	}
	data, err := snapshot.Copy(m.data, stateType)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save stores a copy of data.
func (m *MemoryAdapter) Save(_ context.Context, data map[string]any) error {
	cp, err := snapshot.Copy(data, stateType)
	if err != nil {
		return err
	}
	if cp == nil {
		cp = make(map[string]any)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = cp
	m.saves++
	return nil
}

// Clear removes all data.
func (m *MemoryAdapter) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Saves returns how many times Save has succeeded.
func (m *MemoryAdapter) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
