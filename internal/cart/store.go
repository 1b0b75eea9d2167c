package cart

import (
	"errors"
	"sync"
)

var ErrItemNotFound = errors.New("item not found in cart")

// Store holds one cart per session. A single lock guards the whole map; it
// is only ever held across in-memory slice work, never I/O.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// Get returns a copy of the session's cart, empty for unknown sessions.
func (s *Store) Get(sessionID string) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.carts[sessionID])
}

// Add merges quantity into an existing line for the same product id (the
// first-seen price and name win) or appends a new line. Returns the
// resulting cart.
func (s *Store) Add(sessionID string, line Line) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			s.carts[sessionID] = lines
			return clone(lines)
		}
	}
	lines = append(lines, line)
	s.carts[sessionID] = lines
	return clone(lines)
}

// UpdateQuantity sets the quantity of an existing line.
func (s *Store) UpdateQuantity(sessionID string, productID, quantity int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return clone(lines), nil
		}
	}
	return nil, ErrItemNotFound
}

// Remove deletes the line for the given product id.
func (s *Store) Remove(sessionID string, productID int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			s.carts[sessionID] = lines
			return clone(lines), nil
		}
	}
	return nil, ErrItemNotFound
}

// Clear drops the session's cart. Idempotent.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func clone(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
