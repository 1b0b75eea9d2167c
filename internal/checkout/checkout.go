package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/cart"
	"github.com/uniblox/ecommerce-store/internal/discount"
	"github.com/uniblox/ecommerce-store/internal/events"
	kafkax "github.com/uniblox/ecommerce-store/internal/kafka"
	"github.com/uniblox/ecommerce-store/internal/money"
	"github.com/uniblox/ecommerce-store/internal/orders"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidDiscountCode = errors.New("invalid discount code")
	ErrDiscountAlreadyUsed = errors.New("discount code has already been used")
)

// Result is the order summary returned to the client after a successful
// checkout. NewDiscountCode may echo a code that was already available for
// the session rather than a freshly minted one.
type Result struct {
	OrderID         string    `json:"order_id"`
	Subtotal        float64   `json:"subtotal"`
	DiscountApplied bool      `json:"discount_applied"`
	DiscountAmount  float64   `json:"discount_amount"`
	TotalAmount     float64   `json:"total_amount"`
	NewDiscountCode string    `json:"new_discount_code,omitempty"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
}

// Workflow turns a cart into an order: read cart, validate discount, compute
// totals, persist the order, consume the discount, evaluate nth-order
// eligibility, clear the cart. The whole sequence runs under a per-session
// lock so a concurrent double checkout for one session serializes; sessions
// never contend with each other here.
type Workflow struct {
	carts     *cart.Store
	discounts *discount.Store
	orders    *orders.Store
	producer  *kafkax.Producer // nil disables event publishing
	log       *zap.SugaredLogger

	service    string
	nthOrder   int
	percent    float64
	codePrefix string
	codeLength int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Options struct {
	ServiceName      string
	NthOrderDiscount int
	DiscountPercent  float64
	DiscountPrefix   string
	DiscountCodeLen  int
}

func New(carts *cart.Store, discounts *discount.Store, orderStore *orders.Store, producer *kafkax.Producer, log *zap.SugaredLogger, opts Options) *Workflow {
	return &Workflow{
		carts:      carts,
		discounts:  discounts,
		orders:     orderStore,
		producer:   producer,
		log:        log,
		service:    opts.ServiceName,
		nthOrder:   opts.NthOrderDiscount,
		percent:    opts.DiscountPercent,
		codePrefix: opts.DiscountPrefix,
		codeLength: opts.DiscountCodeLen,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (w *Workflow) sessionLock(sessionID string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		w.locks[sessionID] = l
	}
	return l
}

// Checkout processes one checkout request. Rejections (empty cart, invalid
// or already-used code) are detected before any mutation.
func (w *Workflow) Checkout(ctx context.Context, sessionID, discountCode string) (Result, error) {
	lock := w.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	lines := w.carts.Get(sessionID)
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	subtotal := cart.Subtotal(lines)

	var (
		applied        bool
		percent        float64
		discountAmount = decimal.Zero
	)
	if discountCode != "" {
		if w.discounts.WasUsed(sessionID, discountCode) {
			return Result{}, fmt.Errorf("%w: %s", ErrDiscountAlreadyUsed, discountCode)
		}
		rec, ok := w.discounts.Lookup(sessionID, discountCode)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrInvalidDiscountCode, discountCode)
		}
		percent = rec.Percent
		discountAmount = money.Percent(subtotal, rec.Percent)
		applied = true
	}

	total := subtotal.Sub(discountAmount)

	order, err := w.orders.Create(sessionID, orders.Draft{
		Lines:           lines,
		Subtotal:        money.Round2(subtotal),
		DiscountCode:    discountCode,
		DiscountPercent: percent,
		DiscountAmount:  money.Round2(discountAmount),
		Total:           money.Round2(total),
	})
	if err != nil {
		return Result{}, err
	}

	if applied {
		w.discounts.Consume(sessionID, order.ID, order.DiscountAmount, order.CreatedAt)
	}

	newCode := ""
	if n := w.orders.Count(sessionID); w.nthOrder > 0 && n > 0 && n%w.nthOrder == 0 {
		code := discount.GenerateCode(w.codePrefix, w.codeLength)
		newCode = w.discounts.Issue(sessionID, code, w.percent)
	}

	w.carts.Clear(sessionID)

	message := "Order placed successfully!"
	if newCode != "" {
		message += " You've earned a discount code: " + newCode
	}

	w.publishOrderPlaced(ctx, order)
	w.log.Infow("order placed",
		"session_id", sessionID,
		"order_id", order.ID,
		"total", order.Total,
		"discount_applied", applied,
		"new_discount_code", newCode,
	)

	return Result{
		OrderID:         order.ID,
		Subtotal:        order.Subtotal,
		DiscountApplied: applied,
		DiscountAmount:  order.DiscountAmount,
		TotalAmount:     order.Total,
		NewDiscountCode: newCode,
		Message:         message,
		Timestamp:       order.CreatedAt,
	}, nil
}

func (w *Workflow) publishOrderPlaced(ctx context.Context, o orders.Order) {
	if w.producer == nil {
		return
	}
	items := make([]events.LineItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, events.LineItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      w.service,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(events.OrderPlacedPayload{
			OrderID:        o.ID,
			SessionID:      o.SessionID,
			Items:          items,
			Subtotal:       o.Subtotal,
			DiscountCode:   o.DiscountCode,
			DiscountAmount: o.DiscountAmount,
			Total:          o.Total,
		}),
	}
	w.producer.Publish(events.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
