// Package pdf renders invoices as A4 PDF documents with gofpdf.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/money"
	"gstdesk/internal/render"
)

const (
	pageWidth = 190.0
	lineH     = 6.0
)

// item table column widths, summing to pageWidth
var colWidths = []float64{8, 44, 18, 16, 20, 14, 22, 12, 16, 20}

type pdfRenderer struct{}

// NewPDFRenderer returns a Renderer producing application/pdf documents.
// Core PDF fonts have no rupee glyph, so amounts are prefixed with "Rs.".
func NewPDFRenderer() render.Renderer {
	return &pdfRenderer{}
}

func (r *pdfRenderer) Format() domain.DocumentFormat { return domain.DocumentFormatPDF }

func (r *pdfRenderer) Render(ci *domain.ComputedInvoice) (*domain.Document, error) {
	view, err := render.NewView(ci, func(d decimal.Decimal) string {
		return money.FormatCurrencyWithSymbol(d, money.RupeeAbbrev)
	})
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Fixed metadata keeps output byte-identical for identical input.
	pdf.SetCreationDate(ci.Invoice.InvoiceDate)
	pdf.SetModificationDate(ci.Invoice.InvoiceDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(view.Title+" "+view.InvoiceNumber, true)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeHeader(pdf, tr, view)
	writeParties(pdf, tr, view)
	writeItems(pdf, tr, view)
	writeTotals(pdf, tr, view)
	writeFooter(pdf, tr, view)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return &domain.Document{
		ID:          uuid.New(),
		Format:      domain.DocumentFormatPDF,
		ContentType: domain.DocumentContentTypes[domain.DocumentFormatPDF],
		FileName:    export.BuildFilename("invoice_"+ci.Invoice.InvoiceNumber, "pdf"),
		Content:     buf.Bytes(),
	}, nil
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, v *render.View) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(pageWidth, 10, tr(v.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pageWidth/2, lineH, tr("Invoice No: "+v.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, lineH, tr("Invoice Date: "+v.InvoiceDate), "", 1, "R", false, 0, "")
	pdf.CellFormat(pageWidth, lineH, tr("Due Date: "+v.DueDate), "", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func writeParties(pdf *gofpdf.Fpdf, tr func(string) string, v *render.View) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(pageWidth, 7, tr("From"), "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	seller := v.Company.Name + "\n" + v.Company.Address + "\nGSTIN: " + v.Company.GSTIN + "\nEmail: " + v.Company.Email
	if v.Company.Phone != "" {
		seller += "\nPhone: " + v.Company.Phone
	}
	pdf.MultiCell(pageWidth, 5, tr(seller), "LRB", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(pageWidth, 7, tr("Bill To"), "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	buyer := v.Customer.Name + "\n" + v.Customer.BillingAddress
	if v.Customer.GSTIN != "" {
		buyer += "\nGSTIN: " + v.Customer.GSTIN
	}
	if v.Customer.Phone != "" {
		buyer += "\nPhone: " + v.Customer.Phone
	}
	if v.Customer.Email != "" {
		buyer += "\nEmail: " + v.Customer.Email
	}
	pdf.MultiCell(pageWidth, 5, tr(buyer), "LRB", "L", false)

	if v.ShipTo != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(pageWidth, 7, tr("Ship To"), "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(pageWidth, 5, tr(v.Customer.Name+"\n"+v.ShipTo), "LRB", "L", false)
	}
	pdf.Ln(4)
}

func writeItems(pdf *gofpdf.Fpdf, tr func(string) string, v *render.View) {
	headers := []string{"#", "Description", "HSN/SAC", "Qty", "Rate", "Disc", "Taxable", "Tax %", "Tax", "Total"}
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(colWidths[i], 7, tr(h), "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 8)
	if len(v.Lines) == 0 {
		pdf.CellFormat(pageWidth, lineH, tr("No items"), "1", 1, "C", false, 0, "")
	}
	for i := range v.Lines {
		l := &v.Lines[i]
		qty := l.Quantity
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		cells := []string{
			fmt.Sprintf("%d", l.No), l.Description, l.HSNSAC, qty, l.Rate,
			l.Discount, l.TaxableValue, l.TaxRate, l.TaxAmount, l.LineTotal,
		}
		writeItemRow(pdf, tr, cells)
	}
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, tr func(string) string, v *render.View) {
	labelW, valueW := 50.0, 40.0
	offset := pageWidth - labelW - valueW
	row := func(label, value string) {
		pdf.CellFormat(offset, lineH, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(labelW, lineH, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, lineH, tr(value), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	row("Subtotal", v.Subtotal)
	if v.HasDiscount {
		row("Total Discount", v.TotalDiscount)
	}
	row("Total Tax", v.TotalTax)
	if v.HasShipping {
		row("Shipping Charges", v.Shipping)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(offset, 9, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(labelW, 9, tr("Grand Total"), "T", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 9, tr(v.GrandTotal), "T", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(pageWidth, 5, tr(v.AmountInWords), "", "R", false)
	pdf.Ln(4)
}

func writeFooter(pdf *gofpdf.Fpdf, tr func(string) string, v *render.View) {
	section := func(title, body string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(pageWidth, 6, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(pageWidth, 5, tr(body), "", "L", false)
		pdf.Ln(2)
	}

	if v.Bank != nil {
		var body string
		for _, kv := range [][2]string{
			{"Bank", v.Bank.BankName},
			{"Account No", v.Bank.AccountNumber},
			{"IFSC", v.Bank.IFSCCode},
			{"Branch", v.Bank.Branch},
		} {
			if kv[1] != "" {
				body += kv[0] + ": " + kv[1] + "\n"
			}
		}
		section("Bank Details", body)
	}
	if v.Notes != "" {
		section("Notes", v.Notes)
	}
	if v.Terms != "" {
		section("Terms & Conditions", v.Terms)
	}
}

// writeItemRow draws one item row. The description column wraps and the row
// grows to fit it.
func writeItemRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []string) {
	desc := wrapText(pdf, tr(cells[1]), colWidths[1])
	rowH := float64(len(desc)) * lineH

	_, pageH := pdf.GetPageSize()
	_, bottom := pdf.GetAutoPageBreak()
	if pdf.GetY()+rowH > pageH-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	for j, c := range cells {
		w := colWidths[j]
		if j == 1 {
			pdf.Rect(x, y, w, rowH, "D")
			for k, text := range desc {
				pdf.SetXY(x, y+float64(k)*lineH)
				pdf.CellFormat(w, lineH, text, "", 0, "L", false, 0, "")
			}
		} else {
			align := "R"
			if j <= 2 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(w, rowH, tr(c), "1", 0, align, false, 0, "")
		}
		x += w
	}
	pdf.SetY(y + rowH)
}

// wrapText splits translated text into lines that fit width, breaking on
// spaces and hard-breaking words that are wider than a line. It never
// returns an empty slice.
func wrapText(pdf *gofpdf.Fpdf, text string, width float64) []string {
	limit := width - 2*pdf.GetCellMargin()
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len(word) > 1 && pdf.GetStringWidth(word) > limit {
				n := len(word) - 1
				for n > 1 && pdf.GetStringWidth(word[:n]) > limit {
					n--
				}
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:n])
				word = word[n:]
			}
			if line == "" {
				line = word
				continue
			}
			if candidate := line + " " + word; pdf.GetStringWidth(candidate) <= limit {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
