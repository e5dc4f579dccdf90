package infrastructure

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/optiflow/internal/focus/domain"
)

// InMemorySessionStore keeps sessions in process memory.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewInMemorySessionStore creates an empty store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *InMemorySessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *InMemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
