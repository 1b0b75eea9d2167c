package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uniblox/ecommerce-store/internal/cart"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

// Store holds per-session order histories.
type Store struct {
	mu        sync.RWMutex
	bySession map[string]*History
}

func NewStore() *Store {
	return &Store{bySession: make(map[string]*History)}
}

// Create assigns a fresh id and timestamp, appends the order to the
// session's history and increments its order count.
func (s *Store) Create(sessionID string, d Draft) (Order, error) {
	if len(d.Lines) == 0 {
		return Order{}, ErrEmptyOrder
	}

	o := Order{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		Lines:           cloneLines(d.Lines),
		Subtotal:        d.Subtotal,
		DiscountCode:    d.DiscountCode,
		DiscountPercent: d.DiscountPercent,
		DiscountAmount:  d.DiscountAmount,
		Total:           d.Total,
		CreatedAt:       time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.bySession[sessionID]
	if !ok {
		h = &History{SessionID: sessionID}
		s.bySession[sessionID] = h
	}
	h.Orders = append(h.Orders, o)
	h.OrderCount++
	return o, nil
}

// History returns a deep copy of the session's history.
func (s *Store) History(sessionID string) (History, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.bySession[sessionID]
	if !ok {
		return History{}, false
	}
	out := History{SessionID: h.SessionID, OrderCount: h.OrderCount, Orders: make([]Order, len(h.Orders))}
	copy(out.Orders, h.Orders)
	return out, true
}

// Count returns the session's order count, 0 for unknown sessions.
func (s *Store) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.bySession[sessionID]; ok {
		return h.OrderCount
	}
	return 0
}

// Aggregate sums order counts, totals and discount amounts across all
// sessions. Amounts come back unrounded; callers round at the edge.
func (s *Store) Aggregate() (totalOrders int, totalAmount, totalDiscount decimal.Decimal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totalAmount, totalDiscount = decimal.Zero, decimal.Zero
	for _, h := range s.bySession {
		totalOrders += h.OrderCount
		for _, o := range h.Orders {
			totalAmount = totalAmount.Add(decimal.NewFromFloat(o.Total))
			totalDiscount = totalDiscount.Add(decimal.NewFromFloat(o.DiscountAmount))
		}
	}
	return totalOrders, totalAmount, totalDiscount
}

func cloneLines(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out
}
