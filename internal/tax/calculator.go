// Package tax computes GST line amounts and invoice totals.
//
// Arithmetic is exact (shopspring/decimal). Discount is taken on the gross line
// amount before tax. Out-of-range inputs are rejected, never clamped.
package tax

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateLine derives amount, discount, taxable value, tax and line total for
// one item. Zero quantity or rate yields an all-zero, valid line.
func CalculateLine(item domain.LineItem) (domain.LineAmounts, error) {
	return calculateLine("", item)
}

func calculateLine(prefix string, item domain.LineItem) (domain.LineAmounts, error) {
	if err := checkRanges(prefix, item); err != nil {
		return domain.LineAmounts{}, err
	}

	qty := decimal.NewFromFloat(item.Quantity)
	rate := decimal.NewFromFloat(item.Rate)
	discountPct := decimal.NewFromFloat(item.DiscountPercent)
	taxPct := decimal.NewFromFloat(item.TaxRatePercent)

	amount := qty.Mul(rate)
	discount := amount.Mul(discountPct).Div(hundred)
	taxable := amount.Sub(discount)
	if taxable.IsNegative() {
		return domain.LineAmounts{}, domain.NewComputationError(
			prefix+"taxable_value",
			fmt.Sprintf("%staxable value is negative (%s)", prefix, taxable.String()),
		)
	}
	taxAmount := taxable.Mul(taxPct).Div(hundred)

	return domain.LineAmounts{
		Amount:         amount,
		DiscountAmount: discount,
		TaxableValue:   taxable,
		TaxAmount:      taxAmount,
		LineTotal:      taxable.Add(taxAmount),
	}, nil
}

func checkRanges(prefix string, item domain.LineItem) error {
	var fields []string
	if !inRange(item.Quantity, 0, math.Inf(1)) {
		fields = append(fields, prefix+"quantity")
	}
	if !inRange(item.Rate, 0, math.Inf(1)) {
		fields = append(fields, prefix+"rate")
	}
	if !inRange(item.DiscountPercent, 0, 100) {
		fields = append(fields, prefix+"discount_percent")
	}
	if !inRange(item.TaxRatePercent, 0, 100) {
		fields = append(fields, prefix+"tax_rate_percent")
	}
	if len(fields) == 0 {
		return nil
	}
	return domain.NewRangeError(fields, "values out of range: "+strings.Join(fields, ", "))
}

// inRange rejects NaN and ±Inf as well as values outside [lo, hi].
func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}
