package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced = "OrderPlaced"

	TopicOrderPlaced = "store.order.placed"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type LineItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID        string     `json:"order_id"`
	SessionID      string     `json:"session_id"`
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	DiscountCode   string     `json:"discount_code,omitempty"`
	DiscountAmount float64    `json:"discount_amount"`
	Total          float64    `json:"total_amount"`
}

// PartitionKey keys messages by order id so events for one order stay
// ordered within a partition.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
