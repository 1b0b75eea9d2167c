package discount

import (
	"sync"
	"time"
)

// Record is a session's available (unused) discount code. A session holds at
// most one at any time.
type Record struct {
	Code    string  `json:"code"`
	Percent float64 `json:"percent"`
}

// Used is the immutable history entry written when a code is consumed. A
// code that appears here can never become valid again for the session.
type Used struct {
	OrderID string    `json:"order_id"`
	Code    string    `json:"code"`
	Percent float64   `json:"percent"`
	Amount  float64   `json:"amount"`
	UsedAt  time.Time `json:"used_at"`
}

type entry struct {
	available *Record
	used      []Used
}

// Store tracks per-session discount state: the single available code plus
// the used-code history.
type Store struct {
	mu        sync.RWMutex
	bySession map[string]*entry
}

func NewStore() *Store {
	return &Store{bySession: make(map[string]*entry)}
}

func (s *Store) session(id string) *entry {
	e, ok := s.bySession[id]
	if !ok {
		e = &entry{}
		s.bySession[id] = e
	}
	return e
}

// Issue installs code/percent as the session's available discount and
// returns it. If an unused code already exists it is returned unchanged:
// first-issued-wins until consumed.
func (s *Store) Issue(sessionID, code string, percent float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.session(sessionID)
	if e.available != nil {
		return e.available.Code
	}
	e.available = &Record{Code: code, Percent: percent}
	return code
}

// Lookup returns the available record only when its code matches exactly
// (case-sensitive). Read-only.
func (s *Store) Lookup(sessionID, code string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.bySession[sessionID]
	if !ok || e.available == nil || e.available.Code != code {
		return Record{}, false
	}
	return *e.available, true
}

// Consume moves the available record (if any) into used history, tagged with
// the consuming order. With nothing available it only makes sure the
// session's bookkeeping exists.
func (s *Store) Consume(sessionID, orderID string, amount float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.session(sessionID)
	if e.available == nil {
		return
	}
	e.used = append(e.used, Used{
		OrderID: orderID,
		Code:    e.available.Code,
		Percent: e.available.Percent,
		Amount:  amount,
		UsedAt:  at,
	})
	e.available = nil
}

// WasUsed reports whether the exact code string appears in the session's
// used history.
func (s *Store) WasUsed(sessionID, code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.bySession[sessionID]
	if !ok {
		return false
	}
	for _, u := range e.used {
		if u.Code == code {
			return true
		}
	}
	return false
}

// Counts returns the number of used and still-available codes across all
// sessions.
func (s *Store) Counts() (used, available int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.bySession {
		used += len(e.used)
		if e.available != nil {
			available++
		}
	}
	return used, available
}

// AllCodes returns every code ever issued (available and used) across all
// sessions, in no particular order.
func (s *Store) AllCodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var codes []string
	for _, e := range s.bySession {
		for _, u := range e.used {
			codes = append(codes, u.Code)
		}
		if e.available != nil {
			codes = append(codes, e.available.Code)
		}
	}
	return codes
}
