// Package form5329 computes the nine independent additive tax parts of
// Form 5329, grounded on spec.md §4.6 (no Python original exists).
package form5329

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

var (
	earlyDistributionRate = decimal.NewFromFloat(0.10)
	excessContributionRate = decimal.NewFromFloat(0.06)
	rmdShortfallRateDefault = decimal.NewFromFloat(0.25)
	rmdShortfallRateCorrected = decimal.NewFromFloat(0.10)
)

// Input is Form 5329's self-contained input.
type Input struct {
	domain.ExcessContributionInput
}

// EarlyDistributionResult is one distribution's Part I tax.
type EarlyDistributionResult struct {
	Source  string
	Subject decimal.Decimal
	Tax     decimal.Decimal
}

// ExcessContributionResult is one account's excise-tax part.
type ExcessContributionResult struct {
	Account domain.ExcessContributionAccount
	Excess  decimal.Decimal
	Tax     decimal.Decimal
}

// RMDShortfallResult is one account's Part VIII penalty.
type RMDShortfallResult struct {
	Account  string
	Shortfall decimal.Decimal
	Rate     decimal.Decimal
	Tax      decimal.Decimal
	Waived   bool
}

// Result is Form 5329's full output: nine independent parts summed.
type Result struct {
	EarlyDistributions  []EarlyDistributionResult
	ExcessContributions []ExcessContributionResult
	RMDShortfalls       []RMDShortfallResult

	TotalEarlyDistributionTax  decimal.Decimal
	TotalExcessContributionTax decimal.Decimal
	TotalRMDShortfallTax       decimal.Decimal
	TotalTax                   decimal.Decimal
}

// Calculate implements spec.md §4.6's nine parts.
func Calculate(in Input) Result {
	r := Result{}

	for _, d := range in.EarlyDistributions {
		subject := money.ClampNonNegative(d.TaxableAmount.Sub(d.ExceptionAmount))
		tax := subject.Mul(earlyDistributionRate)
		r.EarlyDistributions = append(r.EarlyDistributions, EarlyDistributionResult{
			Source: d.Source, Subject: subject, Tax: tax,
		})
		r.TotalEarlyDistributionTax = r.TotalEarlyDistributionTax.Add(tax)
	}

	for _, c := range in.ExcessContributions {
		overLimit := money.ClampNonNegative(c.CurrentYearContributions.Sub(c.ContributionLimit))
		excess := money.ClampNonNegative(
			c.PriorYearExcess.
				Add(overLimit).
				Sub(c.WithdrawnByDueDate).
				Sub(c.Recharacterized).
				Sub(c.AppliedToFollowingYear),
		)
		tax := excess.Mul(excessContributionRate)
		r.ExcessContributions = append(r.ExcessContributions, ExcessContributionResult{
			Account: c.Account, Excess: excess, Tax: tax,
		})
		r.TotalExcessContributionTax = r.TotalExcessContributionTax.Add(tax)
	}

	for _, s := range in.RMDShortfalls {
		shortfall := money.ClampNonNegative(s.RequiredAmount.Sub(s.DistributedAmount))
		rate := rmdShortfallRateDefault
		if s.CorrectedWithinWindow {
			rate = rmdShortfallRateCorrected
		}
		tax := shortfall.Mul(rate)
		waived := s.ReasonableCauseWaiver
		if waived {
			tax = decimal.Zero
		}
		r.RMDShortfalls = append(r.RMDShortfalls, RMDShortfallResult{
			Account: s.Account, Shortfall: shortfall, Rate: rate, Tax: tax, Waived: waived,
		})
		r.TotalRMDShortfallTax = r.TotalRMDShortfallTax.Add(tax)
	}

	r.TotalTax = r.TotalEarlyDistributionTax.Add(r.TotalExcessContributionTax).Add(r.TotalRMDShortfallTax)
	return r
}

// roundToNearestTen rounds d to the nearest $10, per spec.md §4.6's
// Roth-contribution-limit helper.
func roundToNearestTen(d decimal.Decimal) decimal.Decimal {
	ten := decimal.NewFromInt(10)
	return d.DivRound(ten, 0).Mul(ten)
}

// RothContributionLimit computes the MAGI-phased-out Roth IRA
// contribution limit: linear reduction across [phaseoutStart,
// phaseoutEnd], floored at $200 when the reduced amount is still
// positive, rounded to the nearest $10, per spec.md §4.6.
func RothContributionLimit(baseLimit, magi, phaseoutStart, phaseoutEnd decimal.Decimal) decimal.Decimal {
	if magi.LessThanOrEqual(phaseoutStart) {
		return baseLimit
	}
	if magi.GreaterThanOrEqual(phaseoutEnd) {
		return decimal.Zero
	}

	rangeSize := phaseoutEnd.Sub(phaseoutStart)
	excess := magi.Sub(phaseoutStart)
	reduction := baseLimit.Mul(excess).Div(rangeSize)
	reduced := baseLimit.Sub(reduction)

	rounded := roundToNearestTen(reduced)
	if rounded.Sign() <= 0 {
		if reduced.GreaterThan(decimal.Zero) {
			return decimal.NewFromInt(200)
		}
		return decimal.Zero
	}
	if rounded.LessThan(decimal.NewFromInt(200)) {
		return decimal.NewFromInt(200)
	}
	return rounded
}
