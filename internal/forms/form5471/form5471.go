// Package form5471 computes Subpart F and GILTI inclusions for
// controlled foreign corporations, grounded on spec.md §4.7 (no Python
// original exists).
package form5471

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

// tenPercentShareholderThreshold is the combined direct + indirect +
// constructive ownership percentage that makes a U.S. person a
// 10%-shareholder for Subpart F/GILTI purposes.
var tenPercentShareholderThreshold = decimal.NewFromFloat(0.10)

// qbaiReturnRate is the 10% deemed tangible income return applied
// against QBAI before netting against tested income.
var qbaiReturnRate = decimal.NewFromFloat(0.10)

// CorpResult is one CFC's inclusion amounts.
type CorpResult struct {
	Name string

	IsCFC              bool
	Is10PctShareholder bool
	InclusionApplies   bool

	NetSubpartFIncome    decimal.Decimal
	SubpartFInclusion    decimal.Decimal

	DeemedTangibleIncomeReturn decimal.Decimal
	NetCFCTestedIncome         decimal.Decimal
	GILTIInclusion             decimal.Decimal
}

// Result is Form 5471's full output across all reported CFCs.
type Result struct {
	Corporations []CorpResult

	TotalSubpartFInclusion decimal.Decimal
	TotalGILTIInclusion    decimal.Decimal
}

// Calculate implements spec.md §4.7.
func Calculate(corps []domain.ControlledForeignCorpInput) Result {
	r := Result{}

	for _, c := range corps {
		cr := CorpResult{
			Name:               c.Name,
			IsCFC:              c.IsCFC,
			Is10PctShareholder: c.OwnershipPercent.GreaterThanOrEqual(tenPercentShareholderThreshold),
		}
		cr.InclusionApplies = cr.IsCFC && cr.Is10PctShareholder

		if cr.InclusionApplies {
			cr.NetSubpartFIncome = money.ClampNonNegative(
				c.GrossSubpartFIncome.
					Sub(c.HighTaxExclusion).
					Sub(c.DeMinimisExclusion).
					Sub(c.SameCountryExclusion),
			)
			cr.SubpartFInclusion = c.ProRataShare.Mul(cr.NetSubpartFIncome)

			cr.DeemedTangibleIncomeReturn = c.QualifiedBusinessAssetInvestment.Mul(qbaiReturnRate)
			cr.NetCFCTestedIncome = money.ClampNonNegative(c.NetTestedIncome.Sub(cr.DeemedTangibleIncomeReturn))
			cr.GILTIInclusion = c.ProRataShare.Mul(cr.NetCFCTestedIncome)
		}

		r.Corporations = append(r.Corporations, cr)
		r.TotalSubpartFInclusion = r.TotalSubpartFInclusion.Add(cr.SubpartFInclusion)
		r.TotalGILTIInclusion = r.TotalGILTIInclusion.Add(cr.GILTIInclusion)
	}

	return r
}
