package export

import (
	"encoding/csv"
	"io"

	"gstdesk/internal/domain"
)

// Writer wraps csv.Writer for exporting invoice registers.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoice writes one row per line item, then the totals rows.
func (w *Writer) WriteInvoice(ci *domain.ComputedInvoice) error {
	for i := range ci.Lines {
		if err := w.csv.Write(lineRow(ci, i)); err != nil {
			return err
		}
	}
	for _, row := range totalsRows(ci) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM-prefixed CSV register of ci to out.
func WriteCSV(out io.Writer, ci *domain.ComputedInvoice) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteInvoice(ci); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
