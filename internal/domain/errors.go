package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingField         = errors.New("required field missing")
	ErrInvalidNumericRange  = errors.New("numeric value out of range")
	ErrComputationInvariant = errors.New("computation invariant violated")
	ErrRenderingFault       = errors.New("document rendering failed")
	ErrUnsupportedFormat    = errors.New("unsupported document format")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrArchiveFailed        = errors.New("document archive failed")
	ErrDeliveryFailed       = errors.New("document delivery failed")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindMissingField:        ErrMissingField,
	ErrorKindInvalidNumericRange: ErrInvalidNumericRange,
	ErrorKindComputation:         ErrComputationInvariant,
	ErrorKindRenderingFault:      ErrRenderingFault,
}

// InvoiceError is a classified submission failure. It matches the sentinel of its
// Kind under errors.Is, as well as the wrapped cause if any.
type InvoiceError struct {
	Kind    ErrorKind
	Fields  []string
	Message string
	Err     error
}

func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InvoiceError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewMissingFieldError lists every missing field path in one error.
func NewMissingFieldError(fields ...string) *InvoiceError {
	return &InvoiceError{
		Kind:    ErrorKindMissingField,
		Fields:  fields,
		Message: "missing required fields: " + strings.Join(fields, ", "),
	}
}

// NewRangeError reports out-of-range numeric fields.
func NewRangeError(fields []string, message string) *InvoiceError {
	return &InvoiceError{Kind: ErrorKindInvalidNumericRange, Fields: fields, Message: message}
}

// NewComputationError reports an arithmetic invariant violation on field.
func NewComputationError(field, message string) *InvoiceError {
	return &InvoiceError{Kind: ErrorKindComputation, Fields: []string{field}, Message: message}
}

// NewRenderingError wraps a renderer failure.
func NewRenderingError(err error) *InvoiceError {
	return &InvoiceError{Kind: ErrorKindRenderingFault, Message: "rendering invoice document", Err: err}
}

// KindOf returns the ErrorKind carried by err, or "" if err is not classified.
func KindOf(err error) ErrorKind {
	var ie *InvoiceError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}
