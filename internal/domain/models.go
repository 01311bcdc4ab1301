package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the aggregate submitted for computation and rendering. It lives for
// one request only; nothing in this service persists it.
type Invoice struct {
	InvoiceNumber   string       `json:"invoice_number"`
	InvoiceDate     time.Time    `json:"invoice_date"`
	DueDate         time.Time    `json:"due_date"`
	Company         Company      `json:"company"`
	Customer        Customer     `json:"customer"`
	Items           []LineItem   `json:"items"`
	Bank            *BankDetails `json:"bank,omitempty"`
	ShippingCharges float64      `json:"shipping_charges"`
	Notes           string       `json:"notes,omitempty"`
	Terms           string       `json:"terms,omitempty"`
}

// Company is the seller block of the invoice.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}

// Customer is the buyer block of the invoice.
type Customer struct {
	Name            string `json:"name"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	GSTIN           string `json:"gstin,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
}

// ShipsElsewhere reports whether a separate shipping address must be printed.
func (c *Customer) ShipsElsewhere() bool {
	return c.ShippingAddress != "" && c.ShippingAddress != c.BillingAddress
}

// BankDetails is rendered only when at least one field is set.
type BankDetails struct {
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// IsEmpty reports whether no bank field is present. A nil receiver is empty.
func (b *BankDetails) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.BankName == "" && b.AccountNumber == "" && b.IFSCCode == "" && b.Branch == ""
}

// LineItem is a single billed line. Percentages are expressed in [0,100].
type LineItem struct {
	Description     string  `json:"description"`
	HSNSAC          string  `json:"hsn_sac"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	Unit            string  `json:"unit"`
	Rate            float64 `json:"rate" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxRatePercent  float64 `json:"tax_rate_percent" validate:"gte=0,lte=100"`
}

// LineAmounts holds the derived values of one line item.
type LineAmounts struct {
	Amount         decimal.Decimal `json:"amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableValue   decimal.Decimal `json:"taxable_value"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// InvoiceTotals aggregates all line amounts of an invoice.
type InvoiceTotals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	ShippingCharges decimal.Decimal `json:"shipping_charges"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// ComputedInvoice pairs an invoice with its derived amounts, in item order.
type ComputedInvoice struct {
	Invoice *Invoice
	Lines   []LineAmounts
	Totals  InvoiceTotals
}

// Document is rendered invoice content, ready for conversion or download.
type Document struct {
	ID          uuid.UUID      `json:"id"`
	Format      DocumentFormat `json:"format"`
	ContentType string         `json:"content_type"`
	FileName    string         `json:"file_name"`
	Content     []byte         `json:"-"`
}

// DocumentReference points at an archived copy of a rendered document.
type DocumentReference struct {
	Key       string `json:"key"`
	Location  string `json:"location"`
	URL       string `json:"url,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}

// BusinessContext is the request-scoped identity handed to services.
type BusinessContext struct {
	BusinessID uuid.UUID
	UserID     uuid.UUID
	Email      string
}
