// Package form8863 computes the American Opportunity and Lifetime
// Learning Credits, grounded on spec.md §4.9 (no Python original exists).
package form8863

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

var (
	aotcMaxCredit        = decimal.NewFromInt(2500)
	aotcFirstTierCap     = decimal.NewFromInt(2000)
	aotcSecondTierCap    = decimal.NewFromInt(4000)
	aotcSecondTierRate   = decimal.NewFromFloat(0.25)
	aotcRefundableRate   = decimal.NewFromFloat(0.40)

	llcRate             = decimal.NewFromFloat(0.20)
	llcExpenseCap       = decimal.NewFromInt(10000)
)

// StudentResult is one student's AOTC computation.
type StudentResult struct {
	Name      string
	Eligible  bool
	TentativeCredit decimal.Decimal
}

// Result is Form 8863's full output.
type Result struct {
	Students []StudentResult

	PhaseoutRatio decimal.Decimal

	AOTCBeforePhaseout decimal.Decimal
	AOTCAfterPhaseout  decimal.Decimal
	AOTCRefundable     decimal.Decimal
	AOTCNonrefundable  decimal.Decimal

	LLCEligibleExpenses decimal.Decimal
	LLCBeforePhaseout   decimal.Decimal
	LLCAfterPhaseout    decimal.Decimal
}

// Calculate implements spec.md §4.9.
func Calculate(in domain.EducationCreditsInput, status domain.FilingStatus, cfg *config.YearConfig) Result {
	r := Result{}

	r.PhaseoutRatio = phaseoutRatio(in.MAGI, status, cfg)

	for _, s := range in.Students {
		sr := StudentResult{Name: s.Name, Eligible: s.AOTCEligible()}
		if sr.Eligible {
			sr.TentativeCredit = aotcTentative(s.QualifiedExpenses)
			r.AOTCBeforePhaseout = r.AOTCBeforePhaseout.Add(sr.TentativeCredit)
		} else if !s.ClaimingAOTC {
			r.LLCEligibleExpenses = r.LLCEligibleExpenses.Add(s.QualifiedExpenses)
		}
		r.Students = append(r.Students, sr)
	}

	r.AOTCAfterPhaseout = r.AOTCBeforePhaseout.Mul(r.PhaseoutRatio)
	r.AOTCRefundable = money.Round2(r.AOTCAfterPhaseout.Mul(aotcRefundableRate))
	r.AOTCNonrefundable = money.ClampNonNegative(r.AOTCAfterPhaseout.Sub(r.AOTCRefundable))

	cappedExpenses := decimal.Min(r.LLCEligibleExpenses, llcExpenseCap)
	r.LLCBeforePhaseout = cappedExpenses.Mul(llcRate)
	r.LLCAfterPhaseout = r.LLCBeforePhaseout.Mul(r.PhaseoutRatio)

	return r
}

// aotcTentative implements spec.md §4.9's tiered formula.
func aotcTentative(expenses decimal.Decimal) decimal.Decimal {
	firstTier := decimal.Min(expenses, aotcFirstTierCap)
	secondTierBase := money.ClampNonNegative(decimal.Min(expenses, aotcSecondTierCap).Sub(aotcFirstTierCap))
	credit := firstTier.Add(secondTierBase.Mul(aotcSecondTierRate))
	return decimal.Min(credit, aotcMaxCredit)
}

// phaseoutRatio implements spec.md §4.9's shared AOTC/LLC phaseout shape:
// clamp(0,1, (limit - MAGI) / range). MFS is disqualified entirely
// (limit/range both 0, so the ratio is always 0 regardless of MAGI).
func phaseoutRatio(magi decimal.Decimal, status domain.FilingStatus, cfg *config.YearConfig) decimal.Decimal {
	limit := cfg.AOTCPhaseoutLimit[status]
	rangeSize := cfg.AOTCPhaseoutRange[status]
	if rangeSize.IsZero() {
		return decimal.Zero
	}
	ratio := limit.Sub(magi).Div(rangeSize)
	return money.ClampRatio(ratio)
}
