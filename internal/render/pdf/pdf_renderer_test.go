package pdf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/render"
	"gstdesk/internal/render/pdf"
	"gstdesk/internal/tax"
	"gstdesk/internal/timeutil"
)

func computedInvoice(t *testing.T) *domain.ComputedInvoice {
	t.Helper()
	invoiceDate, err := timeutil.ParseDate("2025-01-15")
	require.NoError(t, err)
	dueDate, err := timeutil.ParseDate("2025-02-14")
	require.NoError(t, err)

	ci, err := tax.Compute(&domain.Invoice{
		InvoiceNumber: "INV/2025/001",
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Company:       domain.Company{Name: "Acme Traders", Address: "12 MG Road", GSTIN: "29ABCDE1234F1Z5", Email: "billing@acme.in"},
		Customer:      domain.Customer{Name: "Globex Pvt Ltd", BillingAddress: "4 Park Street", ShippingAddress: "Warehouse 7"},
		Items: []domain.LineItem{
			{Description: "Consulting services for the quarter ending March", HSNSAC: "998311", Quantity: 2, Unit: "hrs", Rate: 500, DiscountPercent: 10, TaxRatePercent: 18},
			{Description: "Travel", HSNSAC: "996411", Quantity: 1, Rate: 1200, TaxRatePercent: 5},
		},
		Bank:            &domain.BankDetails{BankName: "State Bank of India", AccountNumber: "001234", IFSCCode: "SBIN0000001"},
		ShippingCharges: 50,
		Notes:           "Thank you for your business.",
		Terms:           "Payment due within 30 days.",
	})
	require.NoError(t, err)
	return ci
}

func TestPDFRenderer_Render(t *testing.T) {
	r := pdf.NewPDFRenderer()
	assert.Equal(t, domain.DocumentFormatPDF, r.Format())

	doc, err := r.Render(computedInvoice(t))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "invoice_INV_2025_001.pdf", doc.FileName)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
	assert.Greater(t, len(doc.Content), 1000)
}

func TestPDFRenderer_Deterministic(t *testing.T) {
	r := pdf.NewPDFRenderer()
	ci := computedInvoice(t)

	first, err := r.Render(ci)
	require.NoError(t, err)
	second, err := r.Render(ci)
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPDFRenderer_MalformedInput(t *testing.T) {
	_, err := pdf.NewPDFRenderer().Render(&domain.ComputedInvoice{})
	assert.ErrorIs(t, err, render.ErrMalformedInput)
}

func TestWrapDescription(t *testing.T) {
	t.Run("short_fits_one_line", func(t *testing.T) {
		assert.Equal(t, []string{"Travel"}, pdf.WrapDescription("Travel"))
	})

	t.Run("long_keeps_every_word", func(t *testing.T) {
		desc := "Quarterly retainer for statutory GST compliance filings, reconciliation of input tax credit and advisory calls"
		lines := pdf.WrapDescription(desc)
		assert.Greater(t, len(lines), 1)
		assert.Equal(t, desc, strings.Join(lines, " "))
		for _, l := range lines {
			assert.NotContains(t, l, "...")
		}
	})

	t.Run("unbroken_word_is_split", func(t *testing.T) {
		word := strings.Repeat("W", 80)
		lines := pdf.WrapDescription(word)
		assert.Greater(t, len(lines), 1)
		assert.Equal(t, word, strings.Join(lines, ""))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []string{""}, pdf.WrapDescription(""))
	})
}

func TestPDFRenderer_LongDescriptions(t *testing.T) {
	ci := computedInvoice(t)
	long := strings.Repeat("Installation and commissioning of rooftop solar panels ", 6)
	for i := range ci.Invoice.Items {
		ci.Invoice.Items[i].Description = long
	}

	doc, err := pdf.NewPDFRenderer().Render(ci)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}
