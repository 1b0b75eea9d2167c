package orders

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniblox/ecommerce-store/internal/cart"
)

func draft(total float64) Draft {
	return Draft{
		Lines:    []cart.Line{{ProductID: 1, Name: "Mug", Price: total, Quantity: 1}},
		Subtotal: total,
		Total:    total,
	}
}

func TestCreateRejectsEmptyLines(t *testing.T) {
	s := NewStore()
	_, err := s.Create("s1", Draft{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Zero(t, s.Count("s1"))
}

func TestCreateAssignsIDAndIncrementsCount(t *testing.T) {
	s := NewStore()

	first, err := s.Create("s1", draft(10))
	require.NoError(t, err)
	second, err := s.Create("s1", draft(20))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, 2, s.Count("s1"))

	h, ok := s.History("s1")
	require.True(t, ok)
	assert.Equal(t, 2, h.OrderCount)
	require.Len(t, h.Orders, 2)
	assert.Equal(t, first.ID, h.Orders[0].ID)
}

func TestHistoryUnknownSession(t *testing.T) {
	s := NewStore()
	_, ok := s.History("nobody")
	assert.False(t, ok)
	assert.Zero(t, s.Count("nobody"))
}

func TestOrderSnapshotIsImmutable(t *testing.T) {
	s := NewStore()
	lines := []cart.Line{{ProductID: 1, Name: "Mug", Price: 9.50, Quantity: 1}}
	o, err := s.Create("s1", Draft{Lines: lines, Subtotal: 9.50, Total: 9.50})
	require.NoError(t, err)

	// Mutating the caller's slice must not reach the stored order.
	lines[0].Quantity = 99
	o.Lines[0].Name = "tampered"

	h, _ := s.History("s1")
	assert.Equal(t, 1, h.Orders[0].Lines[0].Quantity)
}

func TestAggregate(t *testing.T) {
	s := NewStore()
	_, err := s.Create("s1", Draft{Lines: draft(0).Lines, Subtotal: 100, DiscountAmount: 10, Total: 90})
	require.NoError(t, err)
	_, err = s.Create("s2", Draft{Lines: draft(0).Lines, Subtotal: 50, Total: 50})
	require.NoError(t, err)

	totalOrders, totalAmount, totalDiscount := s.Aggregate()
	assert.Equal(t, 2, totalOrders)
	assert.Equal(t, "140", totalAmount.String())
	assert.Equal(t, "10", totalDiscount.String())
}

func TestConcurrentCreates(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create("s1", draft(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, s.Count("s1"))
	h, _ := s.History("s1")
	assert.Len(t, h.Orders, 30)
}
