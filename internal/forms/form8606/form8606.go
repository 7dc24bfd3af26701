// Package form8606 computes nondeductible IRA basis (Parts I-II) and
// Roth distribution ordering (Part III), grounded on
// original_source/src/models/form_8606.py and spec.md §4.5.
package form8606

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

const qualifiedFirstHomeCap = 10000

// PartIResult is the pro-rata basis computation (Parts I-II share the
// same formula; Part II applies it to conversions specifically, already
// folded into the Distributions+Conversions aggregate per spec.md §4.5).
type PartIResult struct {
	TotalBasis             decimal.Decimal
	AggregateValue         decimal.Decimal
	NontaxablePercentage   decimal.Decimal
	NontaxableDistribution decimal.Decimal
	TaxableDistribution    decimal.Decimal
	RemainingBasis         decimal.Decimal
}

// RothOrderingLayer names one of the three Roth-distribution ordering
// layers: contributions come out first, then conversions, then earnings.
type RothOrderingLayer string

const (
	LayerContributions RothOrderingLayer = "contributions"
	LayerConversions   RothOrderingLayer = "conversions"
	LayerEarnings      RothOrderingLayer = "earnings"
)

// RothLayerResult is the amount of a Roth distribution drawn from one
// ordering layer.
type RothLayerResult struct {
	Layer  RothOrderingLayer
	Amount decimal.Decimal
	Taxable bool
	SubjectToPenalty bool
}

// PartIIIResult is Part III's distribution-ordering and
// qualified-distribution determination.
type PartIIIResult struct {
	Qualified        bool
	FiveYearPeriodMet bool
	DistributionReasonMet bool
	Layers           []RothLayerResult
	TotalTaxable     decimal.Decimal
	TotalSubjectToPenalty decimal.Decimal
}

// Result is Form 8606's full output.
type Result struct {
	PartI   PartIResult
	PartIII PartIIIResult
}

// Calculate implements spec.md §4.5's Parts I-III.
func Calculate(in domain.IRABasisInput) Result {
	r := Result{}

	totalBasis := in.PriorBasis.Add(in.CurrentYearNondeductible)
	aggregateValue := in.YearEndValueAllTradIRAs.Add(in.Distributions).Add(in.Conversions)

	pctNontaxable := decimal.Zero
	if aggregateValue.GreaterThan(decimal.Zero) {
		pctNontaxable = decimal.Min(decimal.NewFromInt(1), totalBasis.Div(aggregateValue))
	}

	distributionsAndConversions := in.Distributions.Add(in.Conversions)
	nontaxable := distributionsAndConversions.Mul(pctNontaxable)
	taxable := money.ClampNonNegative(distributionsAndConversions.Sub(nontaxable))
	remainingBasis := money.ClampNonNegative(totalBasis.Sub(nontaxable))

	r.PartI = PartIResult{
		TotalBasis:             totalBasis,
		AggregateValue:         aggregateValue,
		NontaxablePercentage:   pctNontaxable,
		NontaxableDistribution: nontaxable,
		TaxableDistribution:    taxable,
		RemainingBasis:         remainingBasis,
	}

	r.PartIII = calculatePartIII(in)

	return r
}

func calculatePartIII(in domain.IRABasisInput) PartIIIResult {
	pr := PartIIIResult{}

	pr.FiveYearPeriodMet = in.FirstRothContributionYear > 0 &&
		in.CurrentYear >= in.FirstRothContributionYear+5

	pr.DistributionReasonMet = in.Age >= 60 || in.Disabled ||
		(in.FirstHomePurchase && in.FirstHomePurchaseAmount.LessThanOrEqual(decimal.NewFromInt(qualifiedFirstHomeCap)))

	pr.Qualified = pr.FiveYearPeriodMet && pr.DistributionReasonMet

	remaining := in.RothDistribution

	takeFrom := func(layer RothOrderingLayer, pool decimal.Decimal, taxableIfNotQualified bool) {
		if remaining.LessThanOrEqual(decimal.Zero) || pool.LessThanOrEqual(decimal.Zero) {
			return
		}
		amount := decimal.Min(remaining, pool)
		remaining = remaining.Sub(amount)

		lr := RothLayerResult{Layer: layer, Amount: amount}
		if !pr.Qualified {
			lr.Taxable = taxableIfNotQualified
			if layer == LayerConversions && in.AnyConversionWithinFiveYears {
				lr.SubjectToPenalty = true
			}
			if layer == LayerEarnings {
				lr.SubjectToPenalty = true
			}
		}
		pr.Layers = append(pr.Layers, lr)
		pr.TotalTaxable = pr.TotalTaxable.Add(boolDecimal(lr.Taxable, amount))
		pr.TotalSubjectToPenalty = pr.TotalSubjectToPenalty.Add(boolDecimal(lr.SubjectToPenalty, amount))
	}

	// Ordering: contributions (always nontaxable, never penalized) →
	// conversions (nontaxable always, but penalized if within 5 years of
	// the conversion and distribution isn't qualified) → earnings
	// (taxable and penalized unless the distribution is qualified).
	takeFrom(LayerContributions, in.RothContributions, false)
	takeFrom(LayerConversions, in.RothConversionBasis, false)
	takeFrom(LayerEarnings, in.RothEarnings, true)

	return pr
}

func boolDecimal(b bool, d decimal.Decimal) decimal.Decimal {
	if b {
		return d
	}
	return decimal.Zero
}
