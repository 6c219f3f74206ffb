package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Expired records are dropped
// lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = rec
	return nil
}

func (m *MemoryStore) Attempt(_ context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !m.now().Before(rec.ExpiresAt) {
		delete(m.records, key)
		return Record{}, ErrNotFound
	}
	rec.Attempts++
	m.records[key] = rec
	return rec, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.records[key]
	delete(m.records, key)
	return ok, nil
}
