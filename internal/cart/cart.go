package cart

import "github.com/shopspring/decimal"

// Line is a cart entry. Product ids are unique within one cart; price and
// name are fixed by the first add of that product.
type Line struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal sums price*quantity across lines, unrounded.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// TotalQuantity sums the quantities across lines.
func TotalQuantity(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
