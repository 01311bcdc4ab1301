package invoice_test

import (
	"time"

	"gstdesk/internal/domain"
	"gstdesk/internal/validator/invoice"
)

func validInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
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

func findRequiredValidator(key string) invoice.Rule {
	for _, v := range invoice.RequiredFieldValidators() {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}
