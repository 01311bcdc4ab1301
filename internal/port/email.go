package port

import "context"

// InvoiceEmail is the delivery notice for a rendered invoice. Amounts and dates
// are already formatted for display.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	FromCompany   string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	GrandTotal    string
	DocumentURL   string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
