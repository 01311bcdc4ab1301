package invoice

import (
	"context"
	"strings"

	"gstdesk/internal/domain"
)

// Checker runs the boundary rules in a fixed order: required fields first, then
// numeric ranges. The first failing group decides the error kind.
type Checker struct {
	required []Rule
	ranges   []Rule
}

// NewChecker returns a Checker with the built-in rules.
func NewChecker() *Checker {
	return &Checker{
		required: RequiredFieldValidators(),
		ranges:   []Rule{NewRangeValidator()},
	}
}

// Check returns nil when the invoice may be computed, otherwise a
// *domain.InvoiceError listing every offending field of the first failing group.
func (c *Checker) Check(ctx context.Context, inv *domain.Invoice) error {
	if missing := run(ctx, c.required, inv); len(missing) > 0 {
		return domain.NewMissingFieldError(missing...)
	}
	if bad := run(ctx, c.ranges, inv); len(bad) > 0 {
		return domain.NewRangeError(bad, "values out of range: "+strings.Join(bad, ", "))
	}
	return nil
}

// Results returns every individual result, passed or not, for diagnostics.
func (c *Checker) Results(ctx context.Context, inv *domain.Invoice) []ValidationResult {
	var all []ValidationResult
	for _, r := range append(append([]Rule{}, c.required...), c.ranges...) {
		all = append(all, r.Validate(ctx, inv)...)
	}
	return all
}

func run(ctx context.Context, rules []Rule, inv *domain.Invoice) []string {
	var failed []string
	for _, r := range rules {
		failed = append(failed, Failed(r.Validate(ctx, inv))...)
	}
	return failed
}
