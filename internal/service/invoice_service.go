package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/sirupsen/logrus"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/money"
	"gstdesk/internal/port"
	"gstdesk/internal/render"
	"gstdesk/internal/submission"
	"gstdesk/internal/timeutil"
)

const (
	opArchive = "archive"
	opEmail   = "email"
)

// SubmitOptions selects the side effects of a submission.
type SubmitOptions struct {
	Format  domain.DocumentFormat
	Archive bool
	Email   bool
}

// SubmitOutcome is a successful submission plus what happened after it.
type SubmitOutcome struct {
	Result    *submission.Result
	Reference *domain.DocumentReference
	Emailed   bool
}

// InvoiceService exposes invoice computation and rendering to transports.
type InvoiceService interface {
	Preview(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, format domain.DocumentFormat) (*submission.Result, error)
	Submit(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, opts SubmitOptions) (*SubmitOutcome, error)
	Export(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, format domain.ExportFormat, w io.Writer) (*domain.ComputedInvoice, error)
}

// ArchiveConfig controls where rendered documents are stored.
type ArchiveConfig struct {
	Enabled       bool
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
}

type invoiceService struct {
	flow      *submission.Flow
	renderers *render.Registry
	storage   port.ObjectStorage
	email     port.EmailSender
	failures  port.FailurePolicy
	archive   ArchiveConfig
	log       *logrus.Logger
}

// NewInvoiceService wires the submission flow to its collaborators. storage may
// be nil when archive is disabled.
func NewInvoiceService(
	flow *submission.Flow,
	renderers *render.Registry,
	storage port.ObjectStorage,
	email port.EmailSender,
	failures port.FailurePolicy,
	archive ArchiveConfig,
	log *logrus.Logger,
) InvoiceService {
	if failures == nil {
		failures = NoFailures()
	}
	return &invoiceService{
		flow:      flow,
		renderers: renderers,
		storage:   storage,
		email:     email,
		failures:  failures,
		archive:   archive,
		log:       log,
	}
}

// Preview runs the submission flow. On a failed flow the result is returned
// together with its classified error.
func (s *invoiceService) Preview(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, format domain.DocumentFormat) (*submission.Result, error) {
	renderer, err := s.renderers.Get(format)
	if err != nil {
		return nil, err
	}
	result := s.flow.Submit(ctx, inv, renderer)
	if !result.Success {
		return result, result.Err
	}
	s.log.WithFields(logrus.Fields{
		"business_id":    bc.BusinessID,
		"invoice_number": inv.InvoiceNumber,
		"format":         format,
		"grand_total":    result.Computed.Totals.GrandTotal.StringFixed(2),
	}).Info("invoice rendered")
	return result, nil
}

func (s *invoiceService) Submit(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, opts SubmitOptions) (*SubmitOutcome, error) {
	result, err := s.Preview(ctx, bc, inv, opts.Format)
	if err != nil {
		return &SubmitOutcome{Result: result}, err
	}
	outcome := &SubmitOutcome{Result: result}

	if opts.Archive && s.archive.Enabled && s.storage != nil {
		ref, err := s.archiveDocument(ctx, bc, inv, result.Document)
		if err != nil {
			return outcome, err
		}
		outcome.Reference = ref
	}

	if opts.Email && inv.Customer.Email != "" && s.email != nil {
		if err := s.deliver(ctx, inv, result, outcome.Reference); err != nil {
			return outcome, err
		}
		outcome.Emailed = true
	}
	return outcome, nil
}

func (s *invoiceService) Export(ctx context.Context, _ domain.BusinessContext, inv *domain.Invoice, format domain.ExportFormat, w io.Writer) (*domain.ComputedInvoice, error) {
	if _, ok := domain.ExportContentTypes[format]; !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	computed, err := s.flow.Compute(ctx, inv)
	if err != nil {
		return nil, err
	}

	switch format {
	case domain.ExportFormatXLSX:
		err = export.WriteXLSX(w, computed)
	default:
		err = export.WriteCSV(w, computed)
	}
	if err != nil {
		return nil, fmt.Errorf("writing %s register: %w", format, err)
	}
	return computed, nil
}

func (s *invoiceService) archiveDocument(ctx context.Context, bc domain.BusinessContext, inv *domain.Invoice, doc *domain.Document) (*domain.DocumentReference, error) {
	if err := s.failures.ShouldFail(ctx, opArchive); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	key := ArchiveKey(s.archive.KeyPrefix, bc, inv.InvoiceNumber, doc)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archive.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Content),
		ContentType: doc.ContentType,
		Size:        int64(len(doc.Content)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	ref := &domain.DocumentReference{Key: key, Location: out.Location}
	url, err := s.storage.GetPresignedURL(ctx, s.archive.Bucket, key, s.archive.PresignExpiry)
	if err != nil {
		// Stored without a link; the key alone still identifies the document.
		s.log.WithError(err).WithField("key", key).Warn("presigning archived invoice failed")
		return ref, nil
	}
	ref.URL = url
	ref.ExpiresIn = s.archive.PresignExpiry
	return ref, nil
}

func (s *invoiceService) deliver(ctx context.Context, inv *domain.Invoice, result *submission.Result, ref *domain.DocumentReference) error {
	if err := s.failures.ShouldFail(ctx, opEmail); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	msg := port.InvoiceEmail{
		ToEmail:       inv.Customer.Email,
		ToName:        inv.Customer.Name,
		FromCompany:   inv.Company.Name,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   timeutil.LongDate(inv.InvoiceDate),
		DueDate:       timeutil.LongDate(inv.DueDate),
		GrandTotal:    money.FormatCurrency(result.Computed.Totals.GrandTotal),
	}
	if ref != nil {
		msg.DocumentURL = ref.URL
	}
	if err := s.email.SendInvoiceEmail(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// ArchiveKey builds "{prefix}/{business_id}/{invoice}/{document_id}.{ext}".
func ArchiveKey(prefix string, bc domain.BusinessContext, invoiceNumber string, doc *domain.Document) string {
	return path.Join(
		prefix,
		bc.BusinessID.String(),
		export.SanitizeFilename(invoiceNumber),
		doc.ID.String()+"."+string(doc.Format),
	)
}
