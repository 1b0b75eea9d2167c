package sessions

import (
	"sync"
	"time"
)

// Session is an anonymous per-client identity. Created on first contact,
// never mutated, never deleted (process lifetime).
type Session struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	mu    sync.RWMutex
	byID  map[string]Session
	order []string // insertion order, for stable listing
}

func NewStore() *Store {
	return &Store{byID: make(map[string]Session)}
}

// Ensure registers the session if unknown and returns it.
func (s *Store) Ensure(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		return sess
	}
	sess := Session{ID: id, CreatedAt: time.Now().UTC()}
	s.byID[id] = sess
	s.order = append(s.order, id)
	return sess
}

func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byID[id]
	return sess, ok
}

// All returns every known session in creation order.
func (s *Store) All() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
