package store

import (
	"context"
	"sync"
	"time"

	"github.com/playperu/lovebird/internal/quiz"
)

// MemoryStore keeps sessions in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*quiz.Session
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*quiz.Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	m.mu.RLock()
	s, ok := m.data[id]
	m.mu.RUnlock()
	if !ok || expired(s, m.ttl, m.now()) {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, s *quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok || expired(s, m.ttl, m.now()) {
		return ErrNotFound
	}
	delete(m.data, id)
	return nil
}

// Prune drops expired sessions and reports how many were removed.
func (m *MemoryStore) Prune(_ context.Context) (int64, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.data {
		if expired(s, m.ttl, now) {
			delete(m.data, id)
			n++
		}
	}
	return n, nil
}
