package submission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/money"
	"gstdesk/internal/render"
	"gstdesk/internal/submission"
	"gstdesk/internal/validator/invoice"
)

type stubRenderer struct {
	err   error
	panic bool
	calls int
}

func (s *stubRenderer) Format() domain.DocumentFormat { return domain.DocumentFormatHTML }

func (s *stubRenderer) Render(ci *domain.ComputedInvoice) (*domain.Document, error) {
	s.calls++
	if s.panic {
		panic("template exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Document{Format: domain.DocumentFormatHTML, Content: []byte(ci.Invoice.InvoiceNumber)}, nil
}

func validInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		Company:       domain.Company{Name: "Acme Traders", Address: "12 MG Road", GSTIN: "29ABCDE1234F1Z5", Email: "billing@acme.in"},
		Customer:      domain.Customer{Name: "Globex Pvt Ltd", BillingAddress: "4 Park Street"},
		Items: []domain.LineItem{
			{Description: "Consulting", HSNSAC: "998311", Quantity: 2, Rate: 500, DiscountPercent: 10, TaxRatePercent: 18},
		},
		ShippingCharges: 50,
	}
}

func newFlow() (*submission.Flow, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return submission.NewFlow(invoice.NewChecker(), log), hook
}

func states(s ...domain.SubmissionState) []domain.SubmissionState { return s }

func TestSubmit_Success(t *testing.T) {
	flow, hook := newFlow()
	r := &stubRenderer{}

	result := flow.Submit(context.Background(), validInvoice(), r)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, domain.SubmissionStateSucceeded, result.State)
	assert.True(t, result.State.IsTerminal())
	assert.Equal(t, states(
		domain.SubmissionStateIdle,
		domain.SubmissionStateValidating,
		domain.SubmissionStateComputing,
		domain.SubmissionStateRendering,
		domain.SubmissionStateSucceeded,
	), result.Transitions)
	assert.Empty(t, result.ErrorKind)
	assert.NoError(t, result.Err)

	require.NotNil(t, result.Totals())
	assert.Equal(t, "1112.00", result.Totals().GrandTotal.StringFixed(2))
	require.NotNil(t, result.Document)
	assert.Equal(t, "INV-2025-001", string(result.Document.Content))
	assert.Equal(t, 1, r.calls)

	// One debug entry per transition after Idle.
	assert.Len(t, hook.AllEntries(), 4)
}

func TestSubmit_MissingField(t *testing.T) {
	flow, hook := newFlow()
	r := &stubRenderer{}
	inv := validInvoice()
	inv.Items[0].Description = ""

	result := flow.Submit(context.Background(), inv, r)
	assert.False(t, result.Success)
	assert.Equal(t, domain.SubmissionStateFailed, result.State)
	assert.Equal(t, domain.ErrorKindMissingField, result.ErrorKind)
	assert.Equal(t, states(domain.SubmissionStateIdle, domain.SubmissionStateValidating, domain.SubmissionStateFailed), result.Transitions)
	assert.Contains(t, result.Message, "items[0].description")
	assert.ErrorIs(t, result.Err, domain.ErrMissingField)
	assert.Nil(t, result.Totals())
	assert.Nil(t, result.Document)
	assert.Zero(t, r.calls)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, domain.ErrorKindMissingField, last.Data["error_kind"])
}

func TestSubmit_InvalidNumericRange(t *testing.T) {
	flow, _ := newFlow()
	inv := validInvoice()
	inv.Items[0].DiscountPercent = 150

	result := flow.Submit(context.Background(), inv, &stubRenderer{})
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrorKindInvalidNumericRange, result.ErrorKind)
	assert.Equal(t, states(domain.SubmissionStateIdle, domain.SubmissionStateValidating, domain.SubmissionStateFailed), result.Transitions)
	assert.Contains(t, result.Message, "items[0].discount_percent")
}

func TestSubmit_NilInvoice(t *testing.T) {
	flow, _ := newFlow()
	result := flow.Submit(context.Background(), nil, &stubRenderer{})
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrorKindMissingField, result.ErrorKind)
}

func TestSubmit_RendererError(t *testing.T) {
	flow, _ := newFlow()
	cause := errors.New("disk full")

	result := flow.Submit(context.Background(), validInvoice(), &stubRenderer{err: cause})
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrorKindRenderingFault, result.ErrorKind)
	assert.Equal(t, states(
		domain.SubmissionStateIdle,
		domain.SubmissionStateValidating,
		domain.SubmissionStateComputing,
		domain.SubmissionStateRendering,
		domain.SubmissionStateFailed,
	), result.Transitions)
	assert.ErrorIs(t, result.Err, domain.ErrRenderingFault)
	assert.ErrorIs(t, result.Err, cause)
	assert.NotNil(t, result.Totals())
	assert.Nil(t, result.Document)
}

func TestSubmit_RendererPanic(t *testing.T) {
	flow, _ := newFlow()

	var result *submission.Result
	require.NotPanics(t, func() {
		result = flow.Submit(context.Background(), validInvoice(), &stubRenderer{panic: true})
	})
	assert.Equal(t, domain.ErrorKindRenderingFault, result.ErrorKind)
	assert.Contains(t, result.Message, "template exploded")
}

func TestSubmit_NilRenderer(t *testing.T) {
	flow, _ := newFlow()
	var r render.Renderer
	result := flow.Submit(context.Background(), validInvoice(), r)
	assert.Equal(t, domain.ErrorKindRenderingFault, result.ErrorKind)
}

func TestSubmit_IndependentAttempts(t *testing.T) {
	flow, _ := newFlow()
	bad := validInvoice()
	bad.Company.Name = ""

	first := flow.Submit(context.Background(), bad, &stubRenderer{})
	second := flow.Submit(context.Background(), validInvoice(), &stubRenderer{})
	assert.False(t, first.Success)
	assert.True(t, second.Success)
	assert.Len(t, second.Transitions, 5)
}

func TestCompute(t *testing.T) {
	flow, _ := newFlow()

	ci, err := flow.Compute(context.Background(), validInvoice())
	require.NoError(t, err)
	assert.Equal(t, "162.00", ci.Totals.TotalTax.StringFixed(2))

	inv := validInvoice()
	inv.InvoiceNumber = ""
	_, err = flow.Compute(context.Background(), inv)
	assert.Equal(t, domain.ErrorKindMissingField, domain.KindOf(err))
}

func TestSubmit_ComputationInvariant(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	failing := func(*domain.Invoice) (*domain.ComputedInvoice, error) {
		return nil, domain.NewComputationError("items[0].taxable_value", "items[0].taxable value is negative (-1)")
	}
	flow := submission.NewFlow(invoice.NewChecker(), log, submission.WithCompute(failing))
	renderer := &stubRenderer{}

	result := flow.Submit(context.Background(), validInvoice(), renderer)
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrorKindComputation, result.ErrorKind)
	assert.Equal(t, states(
		domain.SubmissionStateIdle,
		domain.SubmissionStateValidating,
		domain.SubmissionStateComputing,
		domain.SubmissionStateFailed,
	), result.Transitions)
	assert.ErrorIs(t, result.Err, domain.ErrComputationInvariant)
	assert.Nil(t, result.Totals())
	assert.Zero(t, renderer.calls)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, domain.ErrorKindComputation, last.Data["error_kind"])
}

func TestSubmit_UnclassifiedComputeError(t *testing.T) {
	cause := errors.New("decimal overflow")
	log, _ := logtest.NewNullLogger()
	flow := submission.NewFlow(invoice.NewChecker(), log, submission.WithCompute(
		func(*domain.Invoice) (*domain.ComputedInvoice, error) { return nil, cause },
	))

	_, err := flow.Compute(context.Background(), validInvoice())
	assert.Equal(t, domain.ErrorKindComputation, domain.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrComputationInvariant)
	assert.ErrorIs(t, err, cause)
}

func TestSubmit_GrandTotalTooLargeToSpell(t *testing.T) {
	flow, _ := newFlow()
	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	inv := validInvoice()
	inv.Items = []domain.LineItem{{Description: "Bulk", HSNSAC: "998311", Quantity: 1e10, Rate: 1e10}}
	result := flow.Submit(context.Background(), inv, renderer)

	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrorKindRenderingFault, result.ErrorKind)
	assert.ErrorIs(t, result.Err, money.ErrAmountTooLarge)
	assert.Nil(t, result.Document)
}
