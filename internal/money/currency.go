// Package money formats rupee amounts for invoices: Indian digit grouping,
// fixed two-decimal display, and spelled-out amounts for printed documents.
//
// All rounding goes through Round, which rounds half away from zero to paise.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// RupeeSymbol prefixes amounts in HTML output.
	RupeeSymbol = "₹"
	// RupeeAbbrev is used where the rendering font cannot draw RupeeSymbol.
	RupeeAbbrev = "Rs. "

	paisePlaces = 2
)

// Round rounds amount to paise, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(paisePlaces)
}

// FormatCurrency renders amount as "₹1,23,456.79".
func FormatCurrency(amount decimal.Decimal) string {
	return FormatCurrencyWithSymbol(amount, RupeeSymbol)
}

// FormatCurrencyWithSymbol renders amount with Indian grouping, two decimals and
// the given prefix. Negative amounts carry a leading minus before the prefix.
func FormatCurrencyWithSymbol(amount decimal.Decimal, symbol string) string {
	rounded := Round(amount)
	fixed := rounded.Abs().StringFixed(paisePlaces)
	intPart, fracPart := fixed[:len(fixed)-paisePlaces-1], fixed[len(fixed)-paisePlaces:]

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(GroupIndian(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatFloat is FormatCurrency for a float64 amount.
func FormatFloat(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(amount))
}

// GroupIndian inserts separators into a string of digits using the Indian
// convention: the last three digits, then groups of two ("12345678" → "1,23,45,678").
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	groups := make([]string, 0, len(head)/2+2)
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	groups = append(groups, head)

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}
