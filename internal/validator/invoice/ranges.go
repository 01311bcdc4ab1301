package invoice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gstdesk/internal/domain"
)

// rangeValidator checks the numeric constraints declared in the validate tags
// of domain.LineItem, plus the invoice-level shipping charge.
type rangeValidator struct {
	validate *validator.Validate
}

// NewRangeValidator builds the numeric-range rule. Field errors are reported by
// their JSON names.
func NewRangeValidator() Rule {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &rangeValidator{validate: v}
}

func (v *rangeValidator) RuleKey() string        { return "range.numeric" }
func (v *rangeValidator) RuleName() string       { return "Range: Numeric Fields" }
func (v *rangeValidator) Kind() domain.ErrorKind { return domain.ErrorKindInvalidNumericRange }

func (v *rangeValidator) Validate(_ context.Context, data *domain.Invoice) []ValidationResult {
	var results []ValidationResult

	results = append(results, v.checkFloat("shipping_charges", data.ShippingCharges, "gte=0", ">= 0"))

	for i := range data.Items {
		item := &data.Items[i]
		prefix := fmt.Sprintf("items[%d].", i)

		// +Inf passes gte=0, so non-finite values are rejected first.
		for _, f := range []struct {
			name string
			val  float64
		}{
			{"quantity", item.Quantity},
			{"rate", item.Rate},
			{"discount_percent", item.DiscountPercent},
			{"tax_rate_percent", item.TaxRatePercent},
		} {
			if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
				results = append(results, rangeResult(false, prefix+f.name, "finite number", fmt.Sprint(f.val)))
			}
		}

		err := v.validate.Struct(item)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				results = append(results, rangeResult(false, prefix+fe.Field(), describeTag(fe), fmt.Sprint(fe.Value())))
			}
			continue
		}
		results = append(results, rangeResult(true, strings.TrimSuffix(prefix, "."), "", ""))
	}
	return dedupe(results)
}

func (v *rangeValidator) checkFloat(field string, val float64, tag, expected string) ValidationResult {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return rangeResult(false, field, expected, fmt.Sprint(val))
	}
	if err := v.validate.Var(val, tag); err != nil {
		return rangeResult(false, field, expected, fmt.Sprint(val))
	}
	return rangeResult(true, field, expected, fmt.Sprint(val))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return ">= " + fe.Param()
	case "lte":
		return "<= " + fe.Param()
	}
	return fe.Tag()
}

func rangeResult(passed bool, fieldPath, expected, actual string) ValidationResult {
	msg := fmt.Sprintf("Range: %s is within range", fieldPath)
	if !passed {
		msg = fmt.Sprintf("Range: %s out of range (expected %s, got %s)", fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

// dedupe drops repeated paths (a NaN fails both the finite and the tag check)
// while keeping first-seen order.
func dedupe(results []ValidationResult) []ValidationResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		key := fmt.Sprintf("%t|%s", r.Passed, r.FieldPath)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
