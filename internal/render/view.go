package render

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
	"gstdesk/internal/money"
	"gstdesk/internal/tax"
	"gstdesk/internal/timeutil"
)

// ErrMalformedInput is returned when a computed invoice cannot be laid out.
var ErrMalformedInput = errors.New("malformed computed invoice")

// View is the display form of a computed invoice. Every amount is already
// formatted; templates only place strings.
type View struct {
	Title         string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Company       domain.Company
	Customer      domain.Customer
	ShipTo        string
	Lines         []LineView
	Subtotal      string
	TotalDiscount string
	TotalTax      string
	Shipping      string
	GrandTotal    string
	HasDiscount   bool
	HasShipping   bool
	AmountInWords string
	Bank          *domain.BankDetails
	Notes         string
	Terms         string
}

// LineView is one printed item row.
type LineView struct {
	No           int
	Description  string
	HSNSAC       string
	Quantity     string
	Unit         string
	Rate         string
	Discount     string
	TaxableValue string
	TaxRate      string
	TaxAmount    string
	LineTotal    string
}

// CurrencyFunc formats an amount for display.
type CurrencyFunc func(decimal.Decimal) string

// NewView lays out ci using currency for every amount.
func NewView(ci *domain.ComputedInvoice, currency CurrencyFunc) (*View, error) {
	if ci == nil || ci.Invoice == nil {
		return nil, fmt.Errorf("%w: no invoice", ErrMalformedInput)
	}
	inv := ci.Invoice
	if len(ci.Lines) != len(inv.Items) {
		return nil, fmt.Errorf("%w: %d items but %d computed lines", ErrMalformedInput, len(inv.Items), len(ci.Lines))
	}

	words, err := money.AmountInWords(ci.Totals.GrandTotal)
	if err != nil {
		return nil, fmt.Errorf("spelling grand total: %w", err)
	}

	v := &View{
		Title:         "Tax Invoice",
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   timeutil.LongDate(inv.InvoiceDate),
		DueDate:       timeutil.LongDate(inv.DueDate),
		Company:       inv.Company,
		Customer:      inv.Customer,
		Lines:         make([]LineView, 0, len(inv.Items)),
		Subtotal:      currency(ci.Totals.Subtotal),
		TotalDiscount: currency(ci.Totals.TotalDiscount),
		TotalTax:      currency(ci.Totals.TotalTax),
		Shipping:      currency(ci.Totals.ShippingCharges),
		GrandTotal:    currency(ci.Totals.GrandTotal),
		HasDiscount:   ci.Totals.TotalDiscount.IsPositive(),
		HasShipping:   ci.Totals.ShippingCharges.IsPositive(),
		AmountInWords: words,
		Notes:         inv.Notes,
		Terms:         inv.Terms,
	}
	if inv.Customer.ShipsElsewhere() {
		v.ShipTo = inv.Customer.ShippingAddress
	}
	if !inv.Bank.IsEmpty() {
		bank := *inv.Bank
		v.Bank = &bank
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		line := ci.Lines[i]
		v.Lines = append(v.Lines, LineView{
			No:           i + 1,
			Description:  item.Description,
			HSNSAC:       item.HSNSAC,
			Quantity:     decimal.NewFromFloat(item.Quantity).String(),
			Unit:         item.Unit,
			Rate:         currency(decimal.NewFromFloat(item.Rate)),
			Discount:     percent(item.DiscountPercent),
			TaxableValue: currency(line.TaxableValue),
			TaxRate:      percent(item.TaxRatePercent),
			TaxAmount:    currency(line.TaxAmount),
			LineTotal:    currency(tax.DisplayLineTotal(line)),
		})
	}
	return v, nil
}

func percent(p float64) string {
	return decimal.NewFromFloat(p).String() + "%"
}
