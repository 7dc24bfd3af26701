// Package form8814 computes the parent's election to report a child's
// interest/dividend/capital-gain income, grounded on spec.md §4.10 (no
// Python original exists).
package form8814

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

var (
	exclusionAmount = decimal.NewFromInt(1300)
	firstTierCeiling = decimal.NewFromInt(2600) // exclusion + the 10%-taxed tier
	firstTierRate    = decimal.NewFromFloat(0.10)
	grossIncomeEligibilityCeiling = decimal.NewFromInt(12500)
)

// EligibilityResult reports whether one child qualifies for the election.
type EligibilityResult struct {
	AgeEligible             bool
	IncomeCompositionEligible bool // income only from interest/div/cap-gain/PFD
	GrossIncomeUnderCeiling bool
	NoWithholding           bool
	Eligible                bool
}

// ChildResult is one child's included amount and its allocation.
type ChildResult struct {
	ChildName string
	Eligibility EligibilityResult

	GrossIncome    decimal.Decimal
	ExcludedAmount decimal.Decimal
	FirstTierTaxed decimal.Decimal // taxed at the flat 10% rate on the parent's return
	IncludedAmount decimal.Decimal // excess over 2,600, taxed at the parent's marginal rate

	// AllocatedOrdinary/Qualified/CapitalGain split IncludedAmount
	// proportionally by the child's income composition.
	AllocatedOrdinary    decimal.Decimal
	AllocatedQualified   decimal.Decimal
	AllocatedCapitalGain decimal.Decimal
}

// Result is Form 8814's full output.
type Result struct {
	Children []ChildResult

	TotalFirstTierTax  decimal.Decimal // at the flat 10% rate, reported directly on the parent's return
	TotalIncludedAmount decimal.Decimal
}

// CheckEligibility implements spec.md §4.10's eligibility gate.
func CheckEligibility(c domain.QualifyingChildIncome) EligibilityResult {
	e := EligibilityResult{}
	e.AgeEligible = c.Age < 19 || (c.Age < 24 && c.FullTimeStudent)
	e.IncomeCompositionEligible = true // QualifyingChildIncome only carries eligible income types by construction
	e.GrossIncomeUnderCeiling = c.GrossIncome().LessThan(grossIncomeEligibilityCeiling)
	e.NoWithholding = c.FederalTaxWithheld.IsZero()
	e.Eligible = e.AgeEligible && e.IncomeCompositionEligible && e.GrossIncomeUnderCeiling && e.NoWithholding
	return e
}

// Calculate implements spec.md §4.10 for every elected child.
func Calculate(in domain.ChildUnearnedIncomeInput) Result {
	r := Result{}

	for _, c := range in.Children {
		cr := ChildResult{ChildName: c.ChildName, Eligibility: CheckEligibility(c)}
		if !cr.Eligibility.Eligible {
			r.Children = append(r.Children, cr)
			continue
		}

		gross := c.GrossIncome()
		cr.GrossIncome = gross

		cr.ExcludedAmount = decimal.Min(gross, exclusionAmount)
		firstTierBase := money.ClampNonNegative(decimal.Min(gross, firstTierCeiling).Sub(exclusionAmount))
		cr.FirstTierTaxed = firstTierBase
		cr.IncludedAmount = money.ClampNonNegative(gross.Sub(firstTierCeiling))

		if gross.GreaterThan(decimal.Zero) {
			// QualifiedDividends is a subset of OrdinaryDividends (it is
			// broken out only for its preferential rate); the ordinary
			// bucket here is the non-qualified remainder, so the three
			// buckets partition gross income without double-counting.
			nonQualifiedOrdinary := money.ClampNonNegative(
				c.TaxableInterest.Add(c.OrdinaryDividends).Add(c.AlaskaPFD).Sub(c.QualifiedDividends),
			)
			cr.AllocatedOrdinary = allocate(cr.IncludedAmount, nonQualifiedOrdinary, gross)
			cr.AllocatedQualified = allocate(cr.IncludedAmount, c.QualifiedDividends, gross)
			cr.AllocatedCapitalGain = allocate(cr.IncludedAmount, c.CapitalGainDistributions, gross)
		}

		r.TotalFirstTierTax = r.TotalFirstTierTax.Add(firstTierBase.Mul(firstTierRate))
		r.TotalIncludedAmount = r.TotalIncludedAmount.Add(cr.IncludedAmount)
		r.Children = append(r.Children, cr)
	}

	return r
}

// allocate splits includedAmount proportionally to component/gross.
func allocate(includedAmount, component, gross decimal.Decimal) decimal.Decimal {
	if gross.IsZero() {
		return decimal.Zero
	}
	return includedAmount.Mul(component).Div(gross)
}
