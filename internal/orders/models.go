package orders

import (
	"time"

	"github.com/uniblox/ecommerce-store/internal/cart"
)

// Order is the immutable snapshot taken at checkout time. Monetary figures
// are rounded to 2 decimal places at creation; they are the figures of
// record.
type Order struct {
	ID              string      `json:"order_id"`
	SessionID       string      `json:"session_id"`
	Lines           []cart.Line `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	DiscountCode    string      `json:"discount_code,omitempty"`
	DiscountPercent float64     `json:"discount_percent"`
	DiscountAmount  float64     `json:"discount_amount"`
	Total           float64     `json:"total_amount"`
	CreatedAt       time.Time   `json:"timestamp"`
}

// History is a session's append-only order record. OrderCount is the counter
// of record for discount eligibility; it equals len(Orders) in practice.
type History struct {
	SessionID  string  `json:"session_id"`
	OrderCount int     `json:"order_count"`
	Orders     []Order `json:"orders"`
}

// Draft carries the figures computed by the checkout workflow into Create.
type Draft struct {
	Lines           []cart.Line
	Subtotal        float64
	DiscountCode    string
	DiscountPercent float64
	DiscountAmount  float64
	Total           float64
}
