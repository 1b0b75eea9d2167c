package money

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places and returns a float64 for JSON surfaces.
func Round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func Round2Float(f float64) float64 {
	return Round2(decimal.NewFromFloat(f))
}

// Percent returns pct% of d, unrounded.
func Percent(d decimal.Decimal, pct float64) decimal.Decimal {
	return d.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
}
