package domain

// DocumentFormat is the output format of a rendered invoice.
type DocumentFormat string

const (
	DocumentFormatHTML DocumentFormat = "html"
	DocumentFormatPDF  DocumentFormat = "pdf"
)

// DocumentContentTypes maps a DocumentFormat to its MIME type.
var DocumentContentTypes = map[DocumentFormat]string{
	DocumentFormatHTML: "text/html; charset=utf-8",
	DocumentFormatPDF:  "application/pdf",
}

// ParseDocumentFormat returns the format for s, defaulting to html when s is empty.
func ParseDocumentFormat(s string) (DocumentFormat, error) {
	if s == "" {
		return DocumentFormatHTML, nil
	}
	f := DocumentFormat(s)
	if _, ok := DocumentContentTypes[f]; !ok {
		return "", ErrUnsupportedFormat
	}
	return f, nil
}

// ExportFormat is the format of a line-item register export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps an ExportFormat to its MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// SubmissionState is a step of the invoice submission flow.
type SubmissionState string

const (
	SubmissionStateIdle       SubmissionState = "idle"
	SubmissionStateValidating SubmissionState = "validating"
	SubmissionStateComputing  SubmissionState = "computing"
	SubmissionStateRendering  SubmissionState = "rendering"
	SubmissionStateSucceeded  SubmissionState = "succeeded"
	SubmissionStateFailed     SubmissionState = "failed"
)

// IsTerminal reports whether no further transition can happen from s.
func (s SubmissionState) IsTerminal() bool {
	return s == SubmissionStateSucceeded || s == SubmissionStateFailed
}

// ErrorKind classifies why a submission failed.
type ErrorKind string

const (
	ErrorKindMissingField        ErrorKind = "MissingField"
	ErrorKindInvalidNumericRange ErrorKind = "InvalidNumericRange"
	ErrorKindComputation         ErrorKind = "ComputationInvariantViolation"
	ErrorKindRenderingFault      ErrorKind = "RenderingFault"
)
