package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniblox/ecommerce-store/internal/cart"
	"github.com/uniblox/ecommerce-store/internal/discount"
	"github.com/uniblox/ecommerce-store/internal/orders"
	"github.com/uniblox/ecommerce-store/internal/sessions"
)

func newReporter() *Reporter {
	return &Reporter{
		Orders:    orders.NewStore(),
		Discounts: discount.NewStore(),
		Sessions:  sessions.NewStore(),
	}
}

func TestStatisticsEmptyStore(t *testing.T) {
	stats := newReporter().Statistics()

	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalItemsPurchased)
	assert.Zero(t, stats.TotalPurchaseAmount)
	assert.Zero(t, stats.AverageOrderValue, "no division by zero without orders")
	assert.Zero(t, stats.DiscountUtilizationRate, "no division by zero without codes")
	assert.NotNil(t, stats.DiscountCodes)
	assert.Empty(t, stats.DiscountCodes)
}

func TestStatisticsAggregates(t *testing.T) {
	r := newReporter()
	lines := []cart.Line{{ProductID: 1, Name: "Widget", Price: 10, Quantity: 1}}

	_, err := r.Orders.Create("s1", orders.Draft{Lines: lines, Subtotal: 100, DiscountAmount: 10, Total: 90})
	require.NoError(t, err)
	_, err = r.Orders.Create("s1", orders.Draft{Lines: lines, Subtotal: 50, Total: 50})
	require.NoError(t, err)
	_, err = r.Orders.Create("s2", orders.Draft{Lines: lines, Subtotal: 60, Total: 60})
	require.NoError(t, err)

	r.Discounts.Issue("s1", "USED-1", 10)
	r.Discounts.Consume("s1", "o1", 10, time.Now())
	r.Discounts.Issue("s1", "OPEN-1", 10)
	r.Discounts.Issue("s2", "OPEN-2", 10)

	stats := r.Statistics()
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 3, stats.TotalItemsPurchased, "items purchased counts orders, not units")
	assert.Equal(t, 200.00, stats.TotalPurchaseAmount)
	assert.Equal(t, 10.00, stats.TotalDiscountAmount)
	assert.Equal(t, 66.67, stats.AverageOrderValue)
	assert.Equal(t, 33.33, stats.DiscountUtilizationRate) // 1 used of 3 ever issued
	assert.ElementsMatch(t, []string{"USED-1", "OPEN-1", "OPEN-2"}, stats.DiscountCodes)
}

func TestUsers(t *testing.T) {
	r := newReporter()
	r.Sessions.Ensure("s1")
	r.Sessions.Ensure("s2")
	r.Sessions.Ensure("s1") // no duplicate

	users := r.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "s1", users[0].ID)
	assert.Equal(t, "s2", users[1].ID)
}
