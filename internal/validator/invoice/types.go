// Package invoice holds the boundary checks run on a submitted invoice before
// any arithmetic: required-field rules and numeric-range rules.
package invoice

import (
	"context"

	"gstdesk/internal/domain"
)

// ValidationResult is the outcome of one rule against one field.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Rule is a single validation rule over an invoice.
type Rule interface {
	RuleKey() string
	RuleName() string
	Kind() domain.ErrorKind
	Validate(ctx context.Context, data *domain.Invoice) []ValidationResult
}

// Failed returns the field paths of the failed results, in order.
func Failed(results []ValidationResult) []string {
	var fields []string
	for i := range results {
		if !results[i].Passed {
			fields = append(fields, results[i].FieldPath)
		}
	}
	return fields
}
