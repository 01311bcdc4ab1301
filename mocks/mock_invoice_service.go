package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"gstdesk/internal/domain"
	"gstdesk/internal/service"
	"gstdesk/internal/submission"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Preview(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, format domain.DocumentFormat) (*submission.Result, error) {
	args := m.Called(ctx, bc, inv, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submission.Result), args.Error(1)
}

func (m *MockInvoiceService) Submit(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, opts service.SubmitOptions) (*service.SubmitOutcome, error) {
	args := m.Called(ctx, bc, inv, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitOutcome), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, format domain.ExportFormat, w io.Writer) (*domain.ComputedInvoice, error) {
	args := m.Called(ctx, bc, inv, format, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComputedInvoice), args.Error(1)
}
