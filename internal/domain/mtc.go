package domain

import "github.com/shopspring/decimal"

// MTCCarryforward is a FIFO-consumed minimum-tax-credit record (indefinite
// carryforward, unlike FTC's 10-year window).
type MTCCarryforward struct {
	OriginYear     int
	OriginalAmount decimal.Decimal
	UsedAmount     decimal.Decimal
}

// Remaining is OriginalAmount - UsedAmount, never negative.
func (c MTCCarryforward) Remaining() decimal.Decimal {
	r := c.OriginalAmount.Sub(c.UsedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// PriorYearAMTDetail decomposes a previous year's AMT into the portion
// driven by timing (deferral) items, which generates MTC, and the portion
// driven by permanent (exclusion) items, which does not.
type PriorYearAMTDetail struct {
	Year                int
	DeferralAdjustments  decimal.Decimal
	ExclusionAdjustments decimal.Decimal
	TotalAMT             decimal.Decimal
}

// DeferralPortion returns the deferral-only share of TotalAMT:
// TotalAMT * DeferralAdjustments / (DeferralAdjustments + ExclusionAdjustments),
// or the whole TotalAMT when the breakdown is unknown (both zero), per
// Form 8801's fallback rule.
func (p PriorYearAMTDetail) DeferralPortion() decimal.Decimal {
	denom := p.DeferralAdjustments.Add(p.ExclusionAdjustments)
	if denom.IsZero() {
		return p.TotalAMT
	}
	return p.TotalAMT.Mul(p.DeferralAdjustments).Div(denom)
}
