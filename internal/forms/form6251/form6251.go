// Package form6251 computes the Alternative Minimum Tax, grounded
// directly on spec.md §4.2 (no Python original exists for Form 6251).
package form6251

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

// Input is Form 6251's self-contained input, built by the pipeline from
// a TaxReturn: the regular-tax taxable income and the AMT preference
// items that feed Part I's addback.
type Input struct {
	FilingStatus domain.FilingStatus

	RegularTaxableIncome decimal.Decimal
	RegularTaxForAMT     decimal.Decimal // regular tax computed for AMT-comparison purposes (net of certain credits per IRC §55)

	UseItemized bool
	SALTDeducted decimal.Decimal // the SALT amount actually deducted on Schedule A (pre-cap), for the addback
	TaxRefundReversal decimal.Decimal

	AMTItems *domain.AMTItems

	// PreferentialIncome is net capital gain + qualified dividends,
	// taxed at preferential rates both for regular tax and (per Part
	// III) for AMT; it is not re-taxed at 26/28% when present.
	PreferentialIncome decimal.Decimal
	PreferentialRate   decimal.Decimal // the blended preferential rate already applied for regular tax purposes

	PriorYearMTC decimal.Decimal
}

// Result is Form 6251's output.
type Result struct {
	SALTAddback             decimal.Decimal
	ISOAdjustment            decimal.Decimal
	DepreciationAdjustment   decimal.Decimal
	PABAdjustment            decimal.Decimal
	OtherAdjustments         decimal.Decimal
	AMTI                     decimal.Decimal
	Exemption                decimal.Decimal
	AMTTaxableIncome         decimal.Decimal
	TentativeMinimumTax      decimal.Decimal
	AMT                      decimal.Decimal // after prior-year MTC, floored at 0
	HasAMTLiability          bool
}

// Calculator computes Form 6251 against one tax year's AMT table.
type Calculator struct {
	cfg *config.YearConfig
}

// New builds a Calculator over the given year table.
func New(cfg *config.YearConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate implements spec.md §4.2's three parts.
func (c *Calculator) Calculate(in Input) Result {
	r := Result{}

	// Part I: AMTI = regular taxable income + adjustments.
	if in.UseItemized {
		r.SALTAddback = money.ClampNonNegative(decimal.Min(in.SALTDeducted, domain.SALTCap))
	}

	if in.AMTItems != nil {
		for _, iso := range in.AMTItems.ISOExercises {
			if iso.SameYearSale {
				continue
			}
			spread := money.ClampNonNegative(iso.FMVAtExercise.Sub(iso.ExercisePrice))
			r.ISOAdjustment = r.ISOAdjustment.Add(iso.Shares.Mul(spread))
		}
		for _, pab := range in.AMTItems.PrivateActivityBonds {
			if pab.PostAug071986 {
				r.PABAdjustment = r.PABAdjustment.Add(pab.InterestIncome)
			}
		}
		for _, dep := range in.AMTItems.DepreciationAdjustments {
			r.DepreciationAdjustment = r.DepreciationAdjustment.Add(dep.MACRS.Sub(dep.ADS))
		}
		for _, other := range in.AMTItems.OtherAdjustments {
			r.OtherAdjustments = r.OtherAdjustments.Add(other.Amount)
		}
	}

	r.AMTI = in.RegularTaxableIncome.
		Add(r.SALTAddback).
		Add(in.TaxRefundReversal).
		Add(r.ISOAdjustment).
		Add(r.PABAdjustment).
		Add(r.DepreciationAdjustment).
		Add(r.OtherAdjustments)

	// Part II: exemption with phaseout.
	table := c.cfg.AMT[in.FilingStatus]
	r.Exemption = phaseOutExemption(table.Exemption, table.PhaseoutStart, r.AMTI)
	r.AMTTaxableIncome = money.ClampNonNegative(r.AMTI.Sub(r.Exemption))

	// Part III: preferential-rate slice is taxed at its own rate, not
	// the 26/28% AMT schedule.
	ordinaryAMTBase := money.ClampNonNegative(r.AMTTaxableIncome.Sub(in.PreferentialIncome))
	r.TentativeMinimumTax = bracketWalk26_28(ordinaryAMTBase, table.TMT28PctStart)
	if in.PreferentialIncome.GreaterThan(decimal.Zero) {
		r.TentativeMinimumTax = r.TentativeMinimumTax.Add(in.PreferentialIncome.Mul(in.PreferentialRate))
	}

	amt := money.ClampNonNegative(r.TentativeMinimumTax.Sub(in.RegularTaxForAMT))
	amt = money.ClampNonNegative(amt.Sub(in.PriorYearMTC))
	r.AMT = amt
	r.HasAMTLiability = r.AMT.GreaterThan(decimal.Zero)

	return r
}

// phaseOutExemption reduces exemption by 25 cents per dollar of AMTI
// over phaseoutStart, floored at 0.
func phaseOutExemption(exemption, phaseoutStart, amti decimal.Decimal) decimal.Decimal {
	excess := amti.Sub(phaseoutStart)
	if excess.Sign() <= 0 {
		return exemption
	}
	reduction := excess.Mul(decimal.NewFromFloat(0.25))
	return money.ClampNonNegative(exemption.Sub(reduction))
}

// bracketWalk26_28 applies the flat 26%/28% TMT rate schedule.
func bracketWalk26_28(amtTaxable, rate28Start decimal.Decimal) decimal.Decimal {
	if amtTaxable.Sign() <= 0 {
		return decimal.Zero
	}
	if amtTaxable.LessThanOrEqual(rate28Start) {
		return amtTaxable.Mul(decimal.NewFromFloat(0.26))
	}
	atTwentySix := rate28Start.Mul(decimal.NewFromFloat(0.26))
	remainder := amtTaxable.Sub(rate28Start).Mul(decimal.NewFromFloat(0.28))
	return atTwentySix.Add(remainder)
}

// CheckAMTLikely is the spec.md §4.2 helper that flags AMT risk factors
// without computing full AMT, for UI warnings and optimization
// suggestions.
type RiskFactors struct {
	LargeSALTDeduction bool
	LargeISOSpread     bool
	HighIncomeNonItemizer bool
}

// CheckAMTLikely flags the risk factors a caller should surface before
// running a full AMT calculation.
func CheckAMTLikely(taxableIncome, saltDeduction, isoSpread decimal.Decimal, status domain.FilingStatus) RiskFactors {
	return RiskFactors{
		LargeSALTDeduction:    saltDeduction.GreaterThan(domain.SALTCap),
		LargeISOSpread:        isoSpread.GreaterThan(decimal.NewFromInt(10000)),
		HighIncomeNonItemizer: taxableIncome.GreaterThan(decimal.NewFromInt(200000)),
	}
}
