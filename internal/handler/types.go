package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
	"gstdesk/internal/money"
	"gstdesk/internal/submission"
	"gstdesk/internal/tax"
	"gstdesk/internal/timeutil"
)

// --- Request Types ---

// InvoiceRequest is the JSON body accepted by every invoice endpoint. Dates
// are YYYY-MM-DD in Indian Standard Time.
type InvoiceRequest struct {
	InvoiceNumber   string              `json:"invoice_number" example:"INV-2025-001"`
	InvoiceDate     string              `json:"invoice_date" example:"2025-01-15"`
	DueDate         string              `json:"due_date" example:"2025-02-14"`
	Company         domain.Company      `json:"company"`
	Customer        domain.Customer     `json:"customer"`
	Items           []domain.LineItem   `json:"items"`
	Bank            *domain.BankDetails `json:"bank,omitempty"`
	ShippingCharges float64             `json:"shipping_charges" example:"50"`
	Notes           string              `json:"notes,omitempty" example:"Thank you for your business."`
	Terms           string              `json:"terms,omitempty" example:"Payment due within 30 days."`
}

// ToInvoice converts the request into the domain aggregate. An empty date
// stays zero so that required-field validation reports it.
func (r *InvoiceRequest) ToInvoice() (*domain.Invoice, error) {
	invoiceDate, err := parseOptionalDate("invoice_date", r.InvoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate("due_date", r.DueDate)
	if err != nil {
		return nil, err
	}
	return &domain.Invoice{
		InvoiceNumber:   r.InvoiceNumber,
		InvoiceDate:     invoiceDate,
		DueDate:         dueDate,
		Company:         r.Company,
		Customer:        r.Customer,
		Items:           r.Items,
		Bank:            r.Bank,
		ShippingCharges: r.ShippingCharges,
		Notes:           r.Notes,
		Terms:           r.Terms,
	}, nil
}

func parseOptionalDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s' must be YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// --- Response Types ---

// LineResponse is one computed line with paise-rounded amounts.
type LineResponse struct {
	Description    string `json:"description" example:"Consulting"`
	Amount         string `json:"amount" example:"1000.00"`
	DiscountAmount string `json:"discount_amount" example:"100.00"`
	TaxableValue   string `json:"taxable_value" example:"900.00"`
	TaxAmount      string `json:"tax_amount" example:"162.00"`
	LineTotal      string `json:"line_total" example:"1062.00"`
}

// TotalsResponse holds invoice totals as fixed two-decimal strings.
type TotalsResponse struct {
	Subtotal        string `json:"subtotal" example:"900.00"`
	TotalDiscount   string `json:"total_discount" example:"100.00"`
	TotalTax        string `json:"total_tax" example:"162.00"`
	ShippingCharges string `json:"shipping_charges" example:"50.00"`
	GrandTotal      string `json:"grand_total" example:"1112.00"`
	GrandTotalText  string `json:"grand_total_display" example:"₹1,112.00"`
	AmountInWords   string `json:"amount_in_words" example:"Rupees One thousand one hundred and twelve only"`
}

// DocumentResponse describes a rendered document. Content is only filled for
// text formats.
type DocumentResponse struct {
	ID          uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Format      string    `json:"format" example:"html"`
	ContentType string    `json:"content_type" example:"text/html; charset=utf-8"`
	FileName    string    `json:"file_name" example:"invoice_INV-2025-001.html"`
	Size        int       `json:"size" example:"5120"`
	Content     string    `json:"content,omitempty"`
}

// PreviewResponse is returned by the preview endpoint.
type PreviewResponse struct {
	State       domain.SubmissionState   `json:"state" example:"succeeded"`
	Transitions []domain.SubmissionState `json:"transitions"`
	Lines       []LineResponse           `json:"lines"`
	Totals      TotalsResponse           `json:"totals"`
	Document    *DocumentResponse        `json:"document,omitempty"`
}

// SubmitResponse is returned by the submit endpoint.
type SubmitResponse struct {
	PreviewResponse
	Archive *domain.DocumentReference `json:"archive,omitempty"`
	Emailed bool                      `json:"emailed"`
}

func newPreviewResponse(result *submission.Result) (PreviewResponse, error) {
	resp := PreviewResponse{
		State:       result.State,
		Transitions: result.Transitions,
	}
	if result.Computed != nil {
		totals, err := newTotalsResponse(result.Computed.Totals)
		if err != nil {
			return PreviewResponse{}, domain.NewRenderingError(err)
		}
		resp.Lines = newLineResponses(result.Computed)
		resp.Totals = totals
	}
	if doc := result.Document; doc != nil {
		resp.Document = &DocumentResponse{
			ID:          doc.ID,
			Format:      string(doc.Format),
			ContentType: doc.ContentType,
			FileName:    doc.FileName,
			Size:        len(doc.Content),
		}
		if doc.Format == domain.DocumentFormatHTML {
			resp.Document.Content = string(doc.Content)
		}
	}
	return resp, nil
}

func newLineResponses(ci *domain.ComputedInvoice) []LineResponse {
	lines := make([]LineResponse, len(ci.Lines))
	for i, l := range ci.Lines {
		lines[i] = LineResponse{
			Description:    ci.Invoice.Items[i].Description,
			Amount:         money.Round(l.Amount).StringFixed(2),
			DiscountAmount: money.Round(l.DiscountAmount).StringFixed(2),
			TaxableValue:   money.Round(l.TaxableValue).StringFixed(2),
			TaxAmount:      money.Round(l.TaxAmount).StringFixed(2),
			LineTotal:      tax.DisplayLineTotal(l).StringFixed(2),
		}
	}
	return lines
}

func newTotalsResponse(t domain.InvoiceTotals) (TotalsResponse, error) {
	words, err := money.AmountInWords(t.GrandTotal)
	if err != nil {
		return TotalsResponse{}, fmt.Errorf("spelling grand total: %w", err)
	}
	return TotalsResponse{
		Subtotal:        t.Subtotal.StringFixed(2),
		TotalDiscount:   t.TotalDiscount.StringFixed(2),
		TotalTax:        t.TotalTax.StringFixed(2),
		ShippingCharges: t.ShippingCharges.StringFixed(2),
		GrandTotal:      t.GrandTotal.StringFixed(2),
		GrandTotalText:  money.FormatCurrency(t.GrandTotal),
		AmountInWords:   words,
	}, nil
}
