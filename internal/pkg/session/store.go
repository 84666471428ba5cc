// internal/pkg/session/store.go
package session

import (
	"context"
	"sync"
	"time"
)

// Store defines how session records are durably stored and retrieved,
// keyed by the opaque session id.
type Store interface {
	// Get returns the record for an id, or (nil, nil) when no live record
	// exists. Implementations must not return expired records.
	Get(ctx context.Context, id string) (*Record, error)
	// Put writes the full record (upsert).
	Put(ctx context.Context, rec *Record) error
	// Touch refreshes only the expiry bookkeeping of an existing record.
	Touch(ctx context.Context, id string, expiresAt, touchedAt time.Time) error
	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process Store. It backs tests and nothing else:
// records do not survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*Record)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(rec.ExpiresAt) {
		delete(m.recs, id)
		return nil, nil
	}
	// Deep copy: callers mutate their copy freely and nothing lands in
	// the store without an explicit Put.
	return rec.clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = rec.clone()
	return nil
}

func (m *MemoryStore) Touch(_ context.Context, id string, expiresAt, touchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[id]; ok {
		rec.ExpiresAt = expiresAt
		rec.TouchedAt = touchedAt
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}
