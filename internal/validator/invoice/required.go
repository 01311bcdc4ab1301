package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gstdesk/internal/domain"
)

// requiredFieldValidator checks that a required field is not blank.
type requiredFieldValidator struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	extract     func(*domain.Invoice) string
	perItem     bool // true for line-item level checks
	extractItem func(*domain.LineItem) string
}

func (v *requiredFieldValidator) RuleKey() string        { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string       { return v.ruleName }
func (v *requiredFieldValidator) Kind() domain.ErrorKind { return domain.ErrorKindMissingField }

func (v *requiredFieldValidator) Validate(_ context.Context, data *domain.Invoice) []ValidationResult {
	if v.perItem {
		results := make([]ValidationResult, 0, len(data.Items))
		for i := range data.Items {
			val := strings.TrimSpace(v.extractItem(&data.Items[i]))
			fieldPath := fmt.Sprintf("items[%d].%s", i, stripPrefix(v.fieldPath))
			results = append(results, requiredResult(val, fieldPath, v.ruleName))
		}
		return results
	}

	val := strings.TrimSpace(v.extract(data))
	return []ValidationResult{requiredResult(val, v.fieldPath, v.ruleName)}
}

func requiredResult(val, fieldPath, ruleName string) ValidationResult {
	passed := val != ""
	msg := fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed:        passed,
		FieldPath:     fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       msg,
	}
}

func stripPrefix(fieldPath string) string {
	// "items[i].description" → "description"
	if i := strings.LastIndexByte(fieldPath, '.'); i >= 0 {
		return fieldPath[i+1:]
	}
	return fieldPath
}

func dateValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// RequiredFieldValidators returns the required-field rules in reporting order.
func RequiredFieldValidators() []Rule {
	return []Rule{
		&requiredFieldValidator{
			ruleKey: "req.invoice.number", ruleName: "Required: Invoice Number",
			fieldPath: "invoice_number",
			extract:   func(d *domain.Invoice) string { return d.InvoiceNumber },
		},
		&requiredFieldValidator{
			ruleKey: "req.invoice.date", ruleName: "Required: Invoice Date",
			fieldPath: "invoice_date",
			extract:   func(d *domain.Invoice) string { return dateValue(d.InvoiceDate) },
		},
		&requiredFieldValidator{
			ruleKey: "req.invoice.due_date", ruleName: "Required: Due Date",
			fieldPath: "due_date",
			extract:   func(d *domain.Invoice) string { return dateValue(d.DueDate) },
		},
		&requiredFieldValidator{
			ruleKey: "req.company.name", ruleName: "Required: Company Name",
			fieldPath: "company.name",
			extract:   func(d *domain.Invoice) string { return d.Company.Name },
		},
		&requiredFieldValidator{
			ruleKey: "req.company.address", ruleName: "Required: Company Address",
			fieldPath: "company.address",
			extract:   func(d *domain.Invoice) string { return d.Company.Address },
		},
		&requiredFieldValidator{
			ruleKey: "req.company.gstin", ruleName: "Required: Company GSTIN",
			fieldPath: "company.gstin",
			extract:   func(d *domain.Invoice) string { return d.Company.GSTIN },
		},
		&requiredFieldValidator{
			ruleKey: "req.company.email", ruleName: "Required: Company Email",
			fieldPath: "company.email",
			extract:   func(d *domain.Invoice) string { return d.Company.Email },
		},
		&requiredFieldValidator{
			ruleKey: "req.customer.name", ruleName: "Required: Customer Name",
			fieldPath: "customer.name",
			extract:   func(d *domain.Invoice) string { return d.Customer.Name },
		},
		&requiredFieldValidator{
			ruleKey: "req.customer.billing_address", ruleName: "Required: Billing Address",
			fieldPath: "customer.billing_address",
			extract:   func(d *domain.Invoice) string { return d.Customer.BillingAddress },
		},
		&requiredFieldValidator{
			ruleKey: "req.item.description", ruleName: "Required: Item Description",
			fieldPath: "items[i].description",
			perItem:   true, extractItem: func(li *domain.LineItem) string { return li.Description },
		},
		&requiredFieldValidator{
			ruleKey: "req.item.hsn_sac", ruleName: "Required: Item HSN/SAC Code",
			fieldPath: "items[i].hsn_sac",
			perItem:   true, extractItem: func(li *domain.LineItem) string { return li.HSNSAC },
		},
	}
}
