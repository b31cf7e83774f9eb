// Package money provides the canonical string representation for monetary
// amounts: exactly two fractional digits, no thousands separators, no
// currency symbol. The symbol is applied by whoever renders the amount.
package money

import "github.com/shopspring/decimal"

// FormatAmount renders a monetary value with exactly two fractional digits
// using standard decimal rounding. It is pure and never fails for a finite
// decimal input.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseAmount parses a decimal amount from its string form. It accepts
// anything shopspring/decimal accepts, including the output of FormatAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
