// Package export writes the line-item register of a computed invoice as CSV or
// XLSX: one row per item with its derived amounts, followed by the totals.
package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
	"gstdesk/internal/money"
	"gstdesk/internal/tax"
	"gstdesk/internal/timeutil"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the register header row (14 columns).
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Line No",
	"Description",
	"HSN/SAC",
	"Quantity",
	"Unit",
	"Rate",
	"Discount %",
	"Discount Amount",
	"Taxable Value",
	"Tax Rate %",
	"Tax Amount",
	"Line Total",
}

// totalsLabels are written in the Description column of the trailing rows.
var totalsLabels = []string{"Subtotal", "Total Discount", "Total Tax", "Shipping Charges", "Grand Total"}

// lineRow converts one computed line to a register row.
func lineRow(ci *domain.ComputedInvoice, i int) []string {
	item := &ci.Invoice.Items[i]
	line := ci.Lines[i]

	row := make([]string, len(columns))
	row[0] = ci.Invoice.InvoiceNumber
	row[1] = formatDate(ci.Invoice)
	row[2] = strconv.Itoa(i + 1)
	row[3] = item.Description
	row[4] = item.HSNSAC
	row[5] = decimal.NewFromFloat(item.Quantity).String()
	row[6] = item.Unit
	row[7] = formatMoney(decimal.NewFromFloat(item.Rate))
	row[8] = decimal.NewFromFloat(item.DiscountPercent).String()
	row[9] = formatMoney(line.DiscountAmount)
	row[10] = formatMoney(line.TaxableValue)
	row[11] = decimal.NewFromFloat(item.TaxRatePercent).String()
	row[12] = formatMoney(line.TaxAmount)
	row[13] = formatMoney(tax.DisplayLineTotal(line))
	return row
}

// totalsRows returns the label/amount pairs following the item rows.
func totalsRows(ci *domain.ComputedInvoice) [][]string {
	amounts := []decimal.Decimal{
		ci.Totals.Subtotal,
		ci.Totals.TotalDiscount,
		ci.Totals.TotalTax,
		ci.Totals.ShippingCharges,
		ci.Totals.GrandTotal,
	}
	rows := make([][]string, 0, len(amounts))
	for i, amt := range amounts {
		row := make([]string, len(columns))
		row[0] = ci.Invoice.InvoiceNumber
		row[3] = totalsLabels[i]
		row[13] = formatMoney(amt)
		rows = append(rows, row)
	}
	return rows
}

func formatMoney(v decimal.Decimal) string {
	return money.Round(v).StringFixed(2)
}

func formatDate(inv *domain.Invoice) string {
	return timeutil.ShortDate(inv.InvoiceDate)
}
