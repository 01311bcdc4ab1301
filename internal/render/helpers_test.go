package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/tax"
	"gstdesk/internal/timeutil"
)

func sampleInvoice(t *testing.T) *domain.Invoice {
	t.Helper()
	invoiceDate, err := timeutil.ParseDate("2025-01-15")
	require.NoError(t, err)
	dueDate, err := timeutil.ParseDate("2025-02-14")
	require.NoError(t, err)

	return &domain.Invoice{
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Company: domain.Company{
			Name:    "Acme Traders",
			Address: "12 MG Road, Bengaluru",
			GSTIN:   "29ABCDE1234F1Z5",
			Email:   "billing@acme.in",
		},
		Customer: domain.Customer{
			Name:           "Globex Pvt Ltd",
			BillingAddress: "4 Park Street, Kolkata",
		},
		Items: []domain.LineItem{
			{Description: "Consulting", HSNSAC: "998311", Quantity: 2, Unit: "hrs", Rate: 500, DiscountPercent: 10, TaxRatePercent: 18},
		},
		ShippingCharges: 50,
	}
}

func compute(t *testing.T, inv *domain.Invoice) *domain.ComputedInvoice {
	t.Helper()
	ci, err := tax.Compute(inv)
	require.NoError(t, err)
	return ci
}
