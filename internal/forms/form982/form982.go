// Package form982 computes the cancellation-of-debt income exclusion and
// the ordered tax-attribute reduction that follows it, grounded on
// spec.md §4.11 (Part III's tests only — no Python original exists).
package form982

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

var (
	qpriExclusionCap = decimal.NewFromInt(750000)

	// creditReductionRatio is the $3-of-COD-per-$1-of-credit rate IRC
	// §108(b)(3) applies to credit-carryover attributes (general business
	// credit, minimum tax credit, foreign tax credit); non-credit
	// attributes (NOL, capital loss, basis, passive activity loss)
	// reduce dollar-for-dollar.
	creditReductionRatio = decimal.NewFromInt(3)

	// attributeReductionOrder is spec.md §4.11's statutory order for the
	// bankruptcy/insolvency/farm exclusions.
	attributeReductionOrder = []domain.TaxAttribute{
		domain.AttributeNOL,
		domain.AttributeGeneralBusinessCredit,
		domain.AttributeMinimumTaxCredit,
		domain.AttributeCapitalLoss,
		domain.AttributeBasis,
		domain.AttributePassiveActivity,
		domain.AttributeForeignTaxCredit,
	}
)

func isCreditAttribute(a domain.TaxAttribute) bool {
	return a == domain.AttributeGeneralBusinessCredit ||
		a == domain.AttributeMinimumTaxCredit ||
		a == domain.AttributeForeignTaxCredit
}

// AttributeReduction is one pool's reduction for the year.
type AttributeReduction struct {
	Attribute     domain.TaxAttribute
	ReducedBy     decimal.Decimal // amount the pool itself shrinks
	ExcludedIncomeAbsorbed decimal.Decimal // excluded COD this reduction accounts for
}

// Result is Form 982's full output.
type Result struct {
	ExcludedAmount decimal.Decimal
	TaxableAmount  decimal.Decimal

	AttributeReductions []AttributeReduction
	ResidenceBasisReduction decimal.Decimal // QPRI only
}

// Calculate implements spec.md §4.11. Returns an error if QPRI is
// requested with a zero or negative residence basis, or if the exclusion
// type is not recognized.
func Calculate(in domain.DebtDischargeInput) (Result, error) {
	r := Result{}

	switch in.Exclusion {
	case domain.DebtDischargeNone:
		r.TaxableAmount = in.TotalCODIncome
		return r, nil

	case domain.DebtDischargeBankruptcy, domain.DebtDischargeQualifiedFarm:
		r.ExcludedAmount = in.TotalCODIncome
		r.TaxableAmount = decimal.Zero
		r.AttributeReductions = reduceAttributes(in.AttributePools, r.ExcludedAmount)
		return r, nil

	case domain.DebtDischargeInsolvency:
		r.ExcludedAmount = decimal.Min(in.TotalCODIncome, in.Insolvency.InsolvencyAmount())
		r.TaxableAmount = money.ClampNonNegative(in.TotalCODIncome.Sub(r.ExcludedAmount))
		r.AttributeReductions = reduceAttributes(in.AttributePools, r.ExcludedAmount)
		return r, nil

	case domain.DebtDischargeQRPBI:
		r.ExcludedAmount = decimal.Min(in.TotalCODIncome, in.QPRIResidenceBasis)
		r.TaxableAmount = money.ClampNonNegative(in.TotalCODIncome.Sub(r.ExcludedAmount))
		r.ResidenceBasisReduction = r.ExcludedAmount
		return r, nil

	case domain.DebtDischargeQPRI:
		if in.QPRIResidenceBasis.Sign() <= 0 {
			return Result{}, errors.New("form982: QPRI exclusion requires a positive residence basis")
		}
		maxExclusion := decimal.Min(qpriExclusionCap, in.TotalCODIncome)
		// the exclusion cannot reduce basis below the secured acquisition
		// debt remaining on the residence.
		basisFloor := in.SecuredAcquisitionDebt
		availableBasisReduction := money.ClampNonNegative(in.QPRIResidenceBasis.Sub(basisFloor))
		r.ExcludedAmount = decimal.Min(maxExclusion, availableBasisReduction)
		r.TaxableAmount = money.ClampNonNegative(in.TotalCODIncome.Sub(r.ExcludedAmount))
		r.ResidenceBasisReduction = r.ExcludedAmount
		return r, nil

	default:
		return Result{}, errors.New("form982: unrecognized exclusion type")
	}
}

// reduceAttributes applies spec.md §4.11's ordered reduction: non-credit
// attributes reduce dollar-for-dollar against excluded income; credit
// attributes reduce at $1 of credit per $3 of excluded income.
func reduceAttributes(pools map[domain.TaxAttribute]decimal.Decimal, excludedAmount decimal.Decimal) []AttributeReduction {
	remaining := excludedAmount
	var out []AttributeReduction

	for _, attr := range attributeReductionOrder {
		available := pools[attr]
		if available.LessThanOrEqual(decimal.Zero) || remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var reduced, absorbed decimal.Decimal
		if isCreditAttribute(attr) {
			maxAbsorbableByPool := available.Mul(creditReductionRatio)
			absorbed = decimal.Min(remaining, maxAbsorbableByPool)
			reduced = absorbed.Div(creditReductionRatio)
		} else {
			absorbed = decimal.Min(remaining, available)
			reduced = absorbed
		}

		out = append(out, AttributeReduction{Attribute: attr, ReducedBy: reduced, ExcludedIncomeAbsorbed: absorbed})
		remaining = remaining.Sub(absorbed)
	}

	return out
}
