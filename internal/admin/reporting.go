package admin

import (
	"github.com/shopspring/decimal"

	"github.com/uniblox/ecommerce-store/internal/discount"
	"github.com/uniblox/ecommerce-store/internal/money"
	"github.com/uniblox/ecommerce-store/internal/orders"
	"github.com/uniblox/ecommerce-store/internal/sessions"
)

// Stats is the read-only aggregate over all sessions' orders and discounts.
// TotalItemsPurchased counts order entries, not line-item units.
type Stats struct {
	TotalOrders             int      `json:"total_orders"`
	TotalItemsPurchased     int      `json:"total_items_purchased"`
	TotalPurchaseAmount     float64  `json:"total_purchase_amount"`
	TotalDiscountAmount     float64  `json:"total_discount_amount"`
	AverageOrderValue       float64  `json:"average_order_value"`
	DiscountUtilizationRate float64  `json:"discount_utilization_rate"`
	DiscountCodes           []string `json:"discount_codes"`
}

// Reporter aggregates store state for the admin surface. Read path only.
type Reporter struct {
	Orders    *orders.Store
	Discounts *discount.Store
	Sessions  *sessions.Store
}

func (r *Reporter) Statistics() Stats {
	totalOrders, totalAmount, totalDiscount := r.Orders.Aggregate()
	used, available := r.Discounts.Counts()

	avg := decimal.Zero
	if totalOrders > 0 {
		avg = totalAmount.Div(decimal.NewFromInt(int64(totalOrders)))
	}

	utilization := decimal.Zero
	if used+available > 0 {
		utilization = decimal.NewFromInt(int64(used)).
			Div(decimal.NewFromInt(int64(used + available))).
			Mul(decimal.NewFromInt(100))
	}

	codes := r.Discounts.AllCodes()
	if codes == nil {
		codes = []string{}
	}

	return Stats{
		TotalOrders:             totalOrders,
		TotalItemsPurchased:     totalOrders,
		TotalPurchaseAmount:     money.Round2(totalAmount),
		TotalDiscountAmount:     money.Round2(totalDiscount),
		AverageOrderValue:       money.Round2(avg),
		DiscountUtilizationRate: money.Round2(utilization),
		DiscountCodes:           codes,
	}
}

func (r *Reporter) Users() []sessions.Session {
	return r.Sessions.All()
}
