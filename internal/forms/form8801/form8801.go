// Package form8801 computes the Minimum Tax Credit, grounded on
// spec.md §4.8 (no Python original exists).
package form8801

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
	"github.com/rgehrsitz/taxengine/internal/sequencing"
)

// Input is Form 8801's self-contained input.
type Input struct {
	// NetMinimumTaxOnExclusionItems is Part I's recomputed TMT using only
	// exclusion items (SALT, PAB interest, depletion). Calculate does not
	// read it: the current-year credit comes from
	// PriorYearAMT.DeferralPortion() alone.
	NetMinimumTaxOnExclusionItems decimal.Decimal

	PriorYearAMT       *domain.PriorYearAMTDetail
	Carryforwards      []domain.MTCCarryforward

	RegularTax decimal.Decimal
	TMT        decimal.Decimal
}

// Result is Form 8801's full output.
type Result struct {
	CurrentYearMTCGenerated decimal.Decimal
	CarryforwardAvailable   decimal.Decimal
	MTCAvailable            decimal.Decimal

	CreditLimit   decimal.Decimal
	CreditAllowed decimal.Decimal
	NewCarryforward decimal.Decimal

	// UpdatedCarryforwards is in.Carryforwards with UsedAmount advanced by
	// this year's FIFO consumption, for the caller to persist into next
	// year's CarryoverState.
	UpdatedCarryforwards []domain.MTCCarryforward
}

// Calculate implements spec.md §4.8's Parts I-II.
func Calculate(in Input) Result {
	r := Result{}

	if in.PriorYearAMT != nil {
		r.CurrentYearMTCGenerated = in.PriorYearAMT.DeferralPortion()
	}

	for _, c := range in.Carryforwards {
		r.CarryforwardAvailable = r.CarryforwardAvailable.Add(c.Remaining())
	}

	r.MTCAvailable = r.CurrentYearMTCGenerated.Add(r.CarryforwardAvailable)

	r.CreditLimit = money.ClampNonNegative(in.RegularTax.Sub(in.TMT))
	r.CreditAllowed = decimal.Min(r.MTCAvailable, r.CreditLimit)

	remainingCredit := r.CreditAllowed
	// current-year-generated MTC is used first (it has no expiry
	// advantage over carryforward, but consuming it first keeps the
	// carryforward's FIFO ordering stable for next year's records).
	fromCurrent := decimal.Min(remainingCredit, r.CurrentYearMTCGenerated)
	remainingCredit = remainingCredit.Sub(fromCurrent)

	// MTC carryforward never expires, unlike FTC's 10-year window, so the
	// asOfYear argument below is inert (mtcRecord.Expired always reports false).
	consumptions := sequencing.Consume(sequencing.WrapMTCCarryforwards(in.Carryforwards), remainingCredit, 0)
	r.UpdatedCarryforwards = sequencing.ApplyMTC(in.Carryforwards, consumptions)
	r.NewCarryforward = money.ClampNonNegative(r.MTCAvailable.Sub(r.CreditAllowed))

	return r
}
