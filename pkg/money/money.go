package money

import "github.com/shopspring/decimal"

// All monetary amounts in the system are integer minor units (euro cents).
// Decimal conversion happens only at the display edge.

var hundred = decimal.NewFromInt(100)

// FromCents converts an amount in cents to a decimal euro value.
func FromCents(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Div(hundred)
}

// FormatEUR renders cents as a fixed two-decimal euro string, e.g. "45.90".
func FormatEUR(cents int) string {
	return FromCents(cents).StringFixed(2)
}
