package adapter

import (
	"context"
	"sync"

	"eduquiz-web/internal/domain"
)

// MemorySessionStore keeps session records in process memory. Records are
// lost on restart, which makes it suitable for development and tests only.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionRecord
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.SessionRecord)}
}

func (m *MemorySessionStore) GetSession(_ context.Context, sid string) (*domain.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &rec, nil
}

func (m *MemorySessionStore) SetSession(_ context.Context, sid string, record domain.SessionRecord) error {
	m.mu.Lock()
	m.sessions[sid] = record
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) ClearSession(_ context.Context, sid string) error {
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
	return nil
}

// Len reports how many sessions are held.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ domain.SessionStore = (*MemorySessionStore)(nil)
