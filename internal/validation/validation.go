// Package validation runs the rule set spec §4.14 step 1 calls for: each
// rule inspects a domain.TaxReturn and fires zero or more taxerr.Issue
// values, partitioned by severity into errors and warnings. It is injected
// into internal/pipeline as a Validator interface rather than a concrete
// dependency, per spec §9's removal of the cyclic-singleton-validator
// anti-pattern (a package-level validator that every caller imports
// directly, binding the pipeline to one implementation and making it
// untestable in isolation).
package validation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

// Validator runs the rule set over a TaxReturn. Implementations must be
// pure functions of their input — no shared mutable state — so that the
// pipeline can run validation concurrently with other per-request work
// if it chooses to.
type Validator interface {
	Validate(ctx context.Context, tr domain.TaxReturn) []taxerr.Issue
}

// RuleFunc is one fired-or-not check. A rule returns a nil slice when it
// has nothing to report.
type RuleFunc func(tr domain.TaxReturn) []taxerr.Issue

// RuleValidator is the default Validator: an ordered list of independent
// rule functions, each contributing its own issues. Rules never abort one
// another — every rule always runs, the same way the teacher's
// validateGenericConfiguration walks every participant and scenario
// before returning, except here results accumulate instead of returning
// on the first failure, since spec §4.14 requires the full partition of
// errors and warnings, not just the first one.
type RuleValidator struct {
	rules []RuleFunc
}

// New builds a RuleValidator with the standard rule set.
func New() *RuleValidator {
	return &RuleValidator{rules: defaultRules()}
}

// NewWithRules builds a RuleValidator from a caller-supplied rule set,
// for tests that want to exercise the partition/accumulation behavior
// without the full default set.
func NewWithRules(rules ...RuleFunc) *RuleValidator {
	return &RuleValidator{rules: rules}
}

func (v *RuleValidator) Validate(_ context.Context, tr domain.TaxReturn) []taxerr.Issue {
	var issues []taxerr.Issue
	for _, rule := range v.rules {
		issues = append(issues, rule(tr)...)
	}
	return issues
}

func defaultRules() []RuleFunc {
	return []RuleFunc{
		ruleFilingStatus,
		ruleTaxYear,
		ruleNonnegativeWages,
		ruleNonnegativeWithholding,
		ruleNonnegativeBusinessIncome,
		ruleNonnegativeRetirementDistributions,
		rulePassiveActivityHours,
		ruleItemizedDeductionsNonnegative,
		ruleDependentsNonnegative,
		ruleSALTCapWarning,
	}
}

func errIssue(ruleID, path, msg string) taxerr.Issue {
	return taxerr.Issue{RuleID: ruleID, Path: path, Message: msg, Severity: taxerr.SeverityError}
}

func warnIssue(ruleID, path, msg string) taxerr.Issue {
	return taxerr.Issue{RuleID: ruleID, Path: path, Message: msg, Severity: taxerr.SeverityWarning}
}

// ruleFilingStatus requires one of the five recognized statuses.
func ruleFilingStatus(tr domain.TaxReturn) []taxerr.Issue {
	if !tr.Taxpayer.FilingStatus.Valid() {
		return []taxerr.Issue{errIssue("filing_status.required", "taxpayer.filing_status",
			fmt.Sprintf("unrecognized filing status %q", tr.Taxpayer.FilingStatus))}
	}
	return nil
}

// ruleTaxYear requires a plausible tax year; the engine only has
// configuration for 2025 today, but the rule checks shape, not coverage.
func ruleTaxYear(tr domain.TaxReturn) []taxerr.Issue {
	if tr.TaxYear < 2000 || tr.TaxYear > 2100 {
		return []taxerr.Issue{errIssue("tax_year.range", "tax_year",
			fmt.Sprintf("tax year %d is out of range", tr.TaxYear))}
	}
	return nil
}

// ruleNonnegativeWages rejects negative wages at any W-2 line.
func ruleNonnegativeWages(tr domain.TaxReturn) []taxerr.Issue {
	var issues []taxerr.Issue
	for i, w := range tr.Income.W2s {
		if w.Wages.LessThan(decimal.Zero) {
			issues = append(issues, errIssue("income.w2_wages_negative",
				fmt.Sprintf("income.w2_forms[%d].wages", i), "wages cannot be negative"))
		}
	}
	return issues
}

// ruleNonnegativeWithholding rejects negative federal withholding.
func ruleNonnegativeWithholding(tr domain.TaxReturn) []taxerr.Issue {
	var issues []taxerr.Issue
	for i, w := range tr.Income.W2s {
		if w.FederalWithholding.LessThan(decimal.Zero) {
			issues = append(issues, errIssue("income.w2_withholding_negative",
				fmt.Sprintf("income.w2_forms[%d].federal_withholding", i), "federal withholding cannot be negative"))
		}
	}
	return issues
}

// ruleNonnegativeBusinessIncome rejects negative net self-employment
// income; a loss year is represented as zero business income plus
// Schedule 1 other-gains-losses, not a negative BusinessIncome.
func ruleNonnegativeBusinessIncome(tr domain.TaxReturn) []taxerr.Issue {
	if tr.Income.BusinessIncome.LessThan(decimal.Zero) {
		return []taxerr.Issue{errIssue("income.business_income_negative", "income.business_income",
			"business income cannot be negative")}
	}
	return nil
}

func ruleNonnegativeRetirementDistributions(tr domain.TaxReturn) []taxerr.Issue {
	if tr.Income.RetirementDistributions.LessThan(decimal.Zero) {
		return []taxerr.Issue{errIssue("income.retirement_distributions_negative",
			"income.retirement_distributions", "retirement distributions cannot be negative")}
	}
	return nil
}

// rulePassiveActivityHours catches impossible hour combinations: no
// individual hour component may exceed the activity's total, and no
// quantity may be negative.
func rulePassiveActivityHours(tr domain.TaxReturn) []taxerr.Issue {
	var issues []taxerr.Issue
	for i, a := range tr.Income.PassiveActivities {
		path := fmt.Sprintf("income.passive_activities[%d]", i)
		for _, h := range []struct {
			name string
			val  decimal.Decimal
		}{
			{"taxpayer_hours", a.TaxpayerHours},
			{"spouse_hours", a.SpouseHours},
			{"total_activity_hours", a.TotalActivityHours},
			{"other_individual_max_hours", a.OtherIndividualMaxHours},
			{"real_property_hours", a.RealPropertyHours},
			{"total_work_hours", a.TotalWorkHours},
		} {
			if h.val.LessThan(decimal.Zero) {
				issues = append(issues, errIssue("passive_activity.hours_negative",
					path+"."+h.name, "hours cannot be negative"))
			}
		}
		if a.TaxpayerHours.GreaterThan(a.TotalActivityHours) && a.TotalActivityHours.GreaterThan(decimal.Zero) {
			issues = append(issues, errIssue("passive_activity.hours_exceed_total",
				path+".taxpayer_hours", "taxpayer hours cannot exceed total activity hours"))
		}
	}
	return issues
}

// ruleItemizedDeductionsNonnegative rejects negative itemized deduction
// lines when the taxpayer elects to itemize.
func ruleItemizedDeductionsNonnegative(tr domain.TaxReturn) []taxerr.Issue {
	if !tr.Deductions.UseItemized {
		return nil
	}
	d := tr.Deductions.Itemized
	var issues []taxerr.Issue
	for _, f := range []struct {
		name string
		val  decimal.Decimal
	}{
		{"medical_expenses", d.MedicalExpenses},
		{"state_and_local_tax", d.StateAndLocalTax},
		{"mortgage_interest", d.MortgageInterest},
		{"charitable_contributions", d.CharitableContributions},
		{"investment_interest_expense", d.InvestmentInterestExpense},
	} {
		if f.val.LessThan(decimal.Zero) {
			issues = append(issues, errIssue("deductions.itemized_negative",
				"deductions.itemized."+f.name, "itemized deduction lines cannot be negative"))
		}
	}
	return issues
}

func ruleDependentsNonnegative(tr domain.TaxReturn) []taxerr.Issue {
	if tr.Taxpayer.Dependents < 0 {
		return []taxerr.Issue{errIssue("taxpayer.dependents_negative", "taxpayer.dependents",
			"dependent count cannot be negative")}
	}
	return nil
}

// ruleSALTCapWarning is a warning, not an error: itemizing with state and
// local tax above the statutory cap is valid (CappedSALT() already
// enforces the cap in computation) but usually signals the caller copied
// an uncapped input, so it is surfaced for review rather than blocking
// the calculation.
func ruleSALTCapWarning(tr domain.TaxReturn) []taxerr.Issue {
	if !tr.Deductions.UseItemized {
		return nil
	}
	if tr.Deductions.Itemized.StateAndLocalTax.GreaterThan(domain.SALTCap) {
		return []taxerr.Issue{warnIssue("deductions.salt_above_cap",
			"deductions.itemized.state_and_local_tax",
			"state and local tax exceeds the statutory cap; it will be capped in computation")}
	}
	return nil
}
