package tax

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
	"gstdesk/internal/money"
)

// Aggregate computes every line and sums them into invoice totals. Totals are
// built from paise-rounded line values so the printed lines always add up to the
// printed totals. Shipping is added after tax and is not taxed. An empty item
// list is valid and yields a grand total equal to shipping.
func Aggregate(items []domain.LineItem, shipping float64) ([]domain.LineAmounts, domain.InvoiceTotals, error) {
	if !inRange(shipping, 0, math.Inf(1)) {
		return nil, domain.InvoiceTotals{}, domain.NewRangeError(
			[]string{"shipping_charges"},
			fmt.Sprintf("shipping_charges must be a non-negative number, got %v", shipping),
		)
	}

	lines := make([]domain.LineAmounts, 0, len(items))
	totals := domain.InvoiceTotals{
		Subtotal:        decimal.Zero,
		TotalTax:        decimal.Zero,
		TotalDiscount:   decimal.Zero,
		ShippingCharges: money.Round(decimal.NewFromFloat(shipping)),
	}

	for i := range items {
		line, err := calculateLine(fmt.Sprintf("items[%d].", i), items[i])
		if err != nil {
			return nil, domain.InvoiceTotals{}, err
		}
		lines = append(lines, line)

		totals.Subtotal = totals.Subtotal.Add(money.Round(line.TaxableValue))
		totals.TotalTax = totals.TotalTax.Add(money.Round(line.TaxAmount))
		totals.TotalDiscount = totals.TotalDiscount.Add(money.Round(line.DiscountAmount))
	}
	totals.GrandTotal = totals.Subtotal.Add(totals.TotalTax).Add(totals.ShippingCharges)

	if err := checkTotals(&totals); err != nil {
		return nil, domain.InvoiceTotals{}, err
	}
	return lines, totals, nil
}

// Compute runs Aggregate over an invoice.
func Compute(inv *domain.Invoice) (*domain.ComputedInvoice, error) {
	lines, totals, err := Aggregate(inv.Items, inv.ShippingCharges)
	if err != nil {
		return nil, err
	}
	return &domain.ComputedInvoice{Invoice: inv, Lines: lines, Totals: totals}, nil
}

// DisplayLineTotal is the line total as printed: rounded taxable value plus
// rounded tax, consistent with how totals are summed.
func DisplayLineTotal(line domain.LineAmounts) decimal.Decimal {
	return money.Round(line.TaxableValue).Add(money.Round(line.TaxAmount))
}

func checkTotals(t *domain.InvoiceTotals) error {
	switch {
	case t.Subtotal.IsNegative():
		return domain.NewComputationError("totals.subtotal", "subtotal is negative")
	case t.TotalTax.IsNegative():
		return domain.NewComputationError("totals.total_tax", "total tax is negative")
	case t.TotalDiscount.IsNegative():
		return domain.NewComputationError("totals.total_discount", "total discount is negative")
	case t.GrandTotal.LessThan(t.Subtotal):
		return domain.NewComputationError("totals.grand_total", "grand total is below subtotal")
	}
	return nil
}
