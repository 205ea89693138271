package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// MockStore is an in-memory Store for tests. It round-trips snapshots
// through the text encoding so the codec is exercised too.
type MockStore struct {
	mu        sync.RWMutex
	slots     map[int][]byte
	saveError error
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates an empty in-memory save store.
func NewMockStore() *MockStore {
	return &MockStore{slots: make(map[int][]byte)}
}

// SetSaveError makes subsequent saves fail with err.
func (m *MockStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStore) SaveGame(_ context.Context, snap *state.Snapshot, slot int) error {
	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.slots[slot] = snap.Encode()
	return nil
}

func (m *MockStore) LoadGame(_ context.Context, _ string, slot int) (*state.Snapshot, error) {
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	m.mu.RLock()
	data, ok := m.slots[slot]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSave, slot)
	}
	return state.DecodeSnapshot(data)
}

func (m *MockStore) SaveExists(_ context.Context, _ string, slot int) (bool, error) {
	if !ValidSlot(slot) {
		return false, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slots[slot]
	return ok, nil
}

func (m *MockStore) Ping(context.Context) error { return nil }
func (m *MockStore) Close() error               { return nil }
