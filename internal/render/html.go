package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/money"
)

//go:embed templates/invoice.html.tmpl
var templateFS embed.FS

type htmlRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded invoice template.
func NewHTMLRenderer() (Renderer, error) {
	tmpl, err := template.New("invoice.html.tmpl").ParseFS(templateFS, "templates/invoice.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice template: %w", err)
	}
	return &htmlRenderer{tmpl: tmpl}, nil
}

func (r *htmlRenderer) Format() domain.DocumentFormat { return domain.DocumentFormatHTML }

func (r *htmlRenderer) Render(ci *domain.ComputedInvoice) (*domain.Document, error) {
	view, err := NewView(ci, money.FormatCurrency)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("executing invoice template: %w", err)
	}

	return &domain.Document{
		ID:          uuid.New(),
		Format:      domain.DocumentFormatHTML,
		ContentType: domain.DocumentContentTypes[domain.DocumentFormatHTML],
		FileName:    export.BuildFilename("invoice_"+ci.Invoice.InvoiceNumber, "html"),
		Content:     buf.Bytes(),
	}, nil
}
