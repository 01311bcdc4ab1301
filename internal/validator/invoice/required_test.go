package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/validator/invoice"
)

func TestRequiredValidators_Count(t *testing.T) {
	assert.Len(t, invoice.RequiredFieldValidators(), 11)
}

func TestRequiredValidators_Metadata(t *testing.T) {
	for _, v := range invoice.RequiredFieldValidators() {
		assert.NotEmpty(t, v.RuleKey())
		assert.NotEmpty(t, v.RuleName())
		assert.Equal(t, domain.ErrorKindMissingField, v.Kind())
	}
}

func TestRequired_InvoiceNumber(t *testing.T) {
	v := findRequiredValidator("req.invoice.number")
	require.NotNil(t, v)
	ctx := context.Background()

	t.Run("pass_present", func(t *testing.T) {
		results := v.Validate(ctx, validInvoice())
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_whitespace", func(t *testing.T) {
		inv := validInvoice()
		inv.InvoiceNumber = "   "
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "invoice_number", results[0].FieldPath)
		assert.Contains(t, results[0].Message, "missing or empty")
	})
}

func TestRequired_DueDate(t *testing.T) {
	v := findRequiredValidator("req.invoice.due_date")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.DueDate = time.Time{}
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "due_date", results[0].FieldPath)
}

func TestRequired_ItemDescription(t *testing.T) {
	v := findRequiredValidator("req.item.description")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.Items = append(inv.Items, domain.LineItem{HSNSAC: "9983", Quantity: 1, Rate: 10})
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "items[1].description", results[1].FieldPath)
}

func TestRequired_ItemRulesWithNoItems(t *testing.T) {
	v := findRequiredValidator("req.item.hsn_sac")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.Items = nil
	assert.Empty(t, v.Validate(context.Background(), inv))
}

func TestRequired_OptionalFieldsNotChecked(t *testing.T) {
	inv := validInvoice()
	inv.Customer.GSTIN = ""
	inv.Customer.ShippingAddress = ""
	inv.Company.Phone = ""
	inv.Bank = nil

	for _, v := range invoice.RequiredFieldValidators() {
		for _, r := range v.Validate(context.Background(), inv) {
			assert.True(t, r.Passed, "%s should pass", r.FieldPath)
		}
	}
}
