package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"gstdesk/internal/port"
)

type noopSender struct {
	log *logrus.Logger
}

// NewNoopSender creates a no-op EmailSender that only logs what would be sent.
func NewNoopSender(log *logrus.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	s.log.WithFields(logrus.Fields{
		"to":             msg.ToEmail,
		"invoice_number": msg.InvoiceNumber,
		"grand_total":    msg.GrandTotal,
		"document_url":   msg.DocumentURL,
	}).Info("[NOOP EMAIL] invoice email")
	return nil
}
