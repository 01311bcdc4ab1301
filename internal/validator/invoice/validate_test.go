package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/validator/invoice"
)

func TestChecker_Valid(t *testing.T) {
	assert.NoError(t, invoice.NewChecker().Check(context.Background(), validInvoice()))
}

func TestChecker_MissingFields(t *testing.T) {
	inv := validInvoice()
	inv.Company.GSTIN = ""
	inv.Items[0].Description = ""

	err := invoice.NewChecker().Check(context.Background(), inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	var invErr *domain.InvoiceError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, domain.ErrorKindMissingField, invErr.Kind)
	assert.Equal(t, []string{"company.gstin", "items[0].description"}, invErr.Fields)
	assert.Equal(t, "missing required fields: company.gstin, items[0].description", invErr.Message)
}

func TestChecker_MissingFieldsReportedBeforeRanges(t *testing.T) {
	inv := validInvoice()
	inv.Customer.Name = ""
	inv.Items[0].DiscountPercent = 150

	err := invoice.NewChecker().Check(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.NotErrorIs(t, err, domain.ErrInvalidNumericRange)
}

func TestChecker_RangeError(t *testing.T) {
	inv := validInvoice()
	inv.Items[0].DiscountPercent = 150

	err := invoice.NewChecker().Check(context.Background(), inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericRange)
	assert.Equal(t, domain.ErrorKindInvalidNumericRange, domain.KindOf(err))
}

func TestChecker_EmptyItemsAccepted(t *testing.T) {
	inv := validInvoice()
	inv.Items = nil
	assert.NoError(t, invoice.NewChecker().Check(context.Background(), inv))
}

func TestChecker_Results(t *testing.T) {
	results := invoice.NewChecker().Results(context.Background(), validInvoice())
	// 9 invoice-level fields, 2 item fields, shipping, 1 item range result.
	assert.Len(t, results, 13)
	assert.Empty(t, invoice.Failed(results))
}
