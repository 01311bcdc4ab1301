// Package submission runs one invoice through validation, computation and
// rendering. Each call is a single deterministic attempt with no retries and no
// shared state, so a Flow is safe for concurrent use.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"gstdesk/internal/domain"
	"gstdesk/internal/render"
	"gstdesk/internal/tax"
	"gstdesk/internal/validator/invoice"
)

// Result is the terminal outcome of a submission.
type Result struct {
	Success     bool
	State       domain.SubmissionState
	Transitions []domain.SubmissionState
	Document    *domain.Document
	Computed    *domain.ComputedInvoice
	ErrorKind   domain.ErrorKind
	Message     string
	Err         error
}

// Totals returns the computed totals, or nil when computation did not finish.
func (r *Result) Totals() *domain.InvoiceTotals {
	if r.Computed == nil {
		return nil
	}
	return &r.Computed.Totals
}

// ComputeFunc turns a validated invoice into line amounts and totals.
type ComputeFunc func(inv *domain.Invoice) (*domain.ComputedInvoice, error)

// Option configures a Flow.
type Option func(*Flow)

// WithCompute replaces the computation step. The default is tax.Compute.
func WithCompute(fn ComputeFunc) Option {
	return func(f *Flow) { f.compute = fn }
}

// Flow drives Idle → Validating → Computing → Rendering → Succeeded|Failed.
type Flow struct {
	checker *invoice.Checker
	compute ComputeFunc
	log     *logrus.Logger
}

// NewFlow creates a Flow using checker for boundary validation.
func NewFlow(checker *invoice.Checker, log *logrus.Logger, opts ...Option) *Flow {
	f := &Flow{checker: checker, compute: tax.Compute, log: log}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type run struct {
	flow   *Flow
	result *Result
	entry  *logrus.Entry
}

func (f *Flow) start(inv *domain.Invoice) *run {
	number := ""
	if inv != nil {
		number = inv.InvoiceNumber
	}
	r := &run{
		flow:   f,
		result: &Result{State: domain.SubmissionStateIdle, Transitions: []domain.SubmissionState{domain.SubmissionStateIdle}},
		entry:  f.log.WithField("invoice_number", number),
	}
	return r
}

func (r *run) to(state domain.SubmissionState) {
	r.result.State = state
	r.result.Transitions = append(r.result.Transitions, state)
	r.entry.WithField("state", state).Debug("invoice submission transition")
}

func (r *run) fail(err error) *Result {
	kind := domain.KindOf(err)
	r.result.Success = false
	r.result.ErrorKind = kind
	r.result.Message = err.Error()
	r.result.Err = err
	r.to(domain.SubmissionStateFailed)
	r.entry.WithFields(logrus.Fields{"error_kind": kind}).WithError(err).Warn("invoice submission failed")
	return r.result
}

// Submit validates, computes and renders inv with renderer. It never returns nil.
func (f *Flow) Submit(ctx context.Context, inv *domain.Invoice, renderer render.Renderer) *Result {
	r := f.start(inv)

	computed, err := r.compute(ctx, inv)
	if err != nil {
		return r.fail(err)
	}
	r.result.Computed = computed

	r.to(domain.SubmissionStateRendering)
	doc, err := renderSafely(renderer, computed)
	if err != nil {
		return r.fail(domain.NewRenderingError(err))
	}

	r.result.Success = true
	r.result.Document = doc
	r.to(domain.SubmissionStateSucceeded)
	return r.result
}

// Compute runs only the validation and computation steps. The returned error is
// a *domain.InvoiceError.
func (f *Flow) Compute(ctx context.Context, inv *domain.Invoice) (*domain.ComputedInvoice, error) {
	r := f.start(inv)
	computed, err := r.compute(ctx, inv)
	if err != nil {
		r.fail(err)
		return nil, err
	}
	return computed, nil
}

func (r *run) compute(ctx context.Context, inv *domain.Invoice) (*domain.ComputedInvoice, error) {
	r.to(domain.SubmissionStateValidating)
	if inv == nil {
		return nil, domain.NewMissingFieldError("invoice")
	}
	if err := r.flow.checker.Check(ctx, inv); err != nil {
		return nil, err
	}

	r.to(domain.SubmissionStateComputing)
	computed, err := r.flow.compute(inv)
	if err != nil {
		var ie *domain.InvoiceError
		if errors.As(err, &ie) {
			return nil, err
		}
		return nil, &domain.InvoiceError{Kind: domain.ErrorKindComputation, Message: "computing totals", Err: err}
	}
	return computed, nil
}

// renderSafely turns a renderer panic into an error.
func renderSafely(renderer render.Renderer, ci *domain.ComputedInvoice) (doc *domain.Document, err error) {
	if renderer == nil {
		return nil, errors.New("no renderer configured")
	}
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("renderer panic: %v", p)
		}
	}()
	return renderer.Render(ci)
}
