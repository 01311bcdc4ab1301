package pdf

import "github.com/jung-kurt/gofpdf/v2"

// WrapDescription wraps text the way the item table's description column does.
func WrapDescription(text string) []string {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 8)
	return wrapText(doc, doc.UnicodeTranslatorFromDescriptor("")(text), colWidths[1])
}
