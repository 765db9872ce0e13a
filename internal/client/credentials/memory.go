package credentials

import (
	"context"
	"sync"
)

// MemoryStore keeps the slot in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemoryStore(initial Credentials) *MemoryStore {
	return &MemoryStore{creds: initial}
}

func (m *MemoryStore) Load(_ context.Context) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds, nil
}

func (m *MemoryStore) Save(_ context.Context, c Credentials) error {
	m.mu.Lock()
	m.creds = c
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.creds = Credentials{}
	m.mu.Unlock()
	return nil
}
