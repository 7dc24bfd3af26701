// Package form1116 computes the Foreign Tax Credit per basket, grounded
// on spec.md §4.4 (no Python original exists for Form 1116).
package form1116

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
	"github.com/rgehrsitz/taxengine/internal/sequencing"
)

// simplifiedMethodLimit is spec.md §4.4's total-foreign-taxes threshold
// under which Form 1116 is not required; the credit equals taxes paid.
func simplifiedMethodLimit(status domain.FilingStatus) decimal.Decimal {
	if status == domain.MarriedFilingJointly {
		return decimal.NewFromInt(600)
	}
	return decimal.NewFromInt(300)
}

// BasketInput is one separate-limitation-category's facts for the year.
type BasketInput struct {
	Category domain.FTCCategory

	GrossForeignIncome       decimal.Decimal
	DefinitelyRelatedDeductions decimal.Decimal
	AllocatedDeductions      decimal.Decimal // interest/SALT/other ratably apportioned
	LossesFromOtherCategories decimal.Decimal

	TaxesPaid decimal.Decimal

	// Carryovers are this basket's prior-year FTC carryover records,
	// FIFO-consumed by origin year.
	Carryovers []domain.FTCCarryover
}

// Input is Form 1116's self-contained input.
type Input struct {
	FilingStatus domain.FilingStatus
	Baskets      []BasketInput

	TotalTaxableIncome     decimal.Decimal
	TotalTaxBeforeCredits  decimal.Decimal

	// AMT variant: when UseAMT is true, AMTI/TMT substitute for taxable
	// income/regular tax per spec.md §4.4's last paragraph.
	UseAMT bool
	AMTI   decimal.Decimal
	TMT    decimal.Decimal

	CurrentYear int
}

// BasketResult is one basket's computed FTC.
type BasketResult struct {
	Category domain.FTCCategory

	NetForeignIncome decimal.Decimal
	Limitation       decimal.Decimal
	CreditBeforeCarryover decimal.Decimal

	CarryoverUsed      decimal.Decimal // prior-year carryover consumed via excess limitation
	NewCarryforward    decimal.Decimal // this year's excess taxes, carried forward
	ExpiredCarryovers  decimal.Decimal // carryover amounts that aged out unused

	CreditAllowed decimal.Decimal // CreditBeforeCarryover + CarryoverUsed

	// UpdatedCarryovers reflects this year's consumption applied back
	// onto the basket's carryover records, for the caller to persist.
	UpdatedCarryovers []domain.FTCCarryover
}

// Result is Form 1116's full output.
type Result struct {
	Baskets []BasketResult

	SimplifiedMethodApplies bool
	TotalCreditAllowed      decimal.Decimal
}

// Calculate implements spec.md §4.4.
func Calculate(in Input) Result {
	r := Result{}

	if isSimplifiedMethodEligible(in) {
		r.SimplifiedMethodApplies = true
		for _, b := range in.Baskets {
			r.TotalCreditAllowed = r.TotalCreditAllowed.Add(b.TaxesPaid)
		}
		return r
	}

	incomeBase := in.TotalTaxableIncome
	taxBase := in.TotalTaxBeforeCredits
	if in.UseAMT {
		incomeBase = in.AMTI
		taxBase = in.TMT
	}

	for _, b := range in.Baskets {
		br := calculateBasket(b, incomeBase, taxBase, in.CurrentYear)
		r.Baskets = append(r.Baskets, br)
		r.TotalCreditAllowed = r.TotalCreditAllowed.Add(br.CreditAllowed)
	}

	if in.UseAMT {
		// credit cannot reduce TMT below 0 in aggregate.
		if r.TotalCreditAllowed.GreaterThan(in.TMT) {
			excess := r.TotalCreditAllowed.Sub(in.TMT)
			r.TotalCreditAllowed = in.TMT
			if len(r.Baskets) > 0 {
				last := &r.Baskets[len(r.Baskets)-1]
				reduce := decimal.Min(excess, last.CreditAllowed)
				last.CreditAllowed = last.CreditAllowed.Sub(reduce)
				last.NewCarryforward = last.NewCarryforward.Add(reduce)
			}
		}
	}

	return r
}

func isSimplifiedMethodEligible(in Input) bool {
	if in.UseAMT {
		return false
	}
	if len(in.Baskets) != 1 || in.Baskets[0].Category != domain.FTCCategoryPassive {
		return false
	}
	total := decimal.Zero
	for _, b := range in.Baskets {
		total = total.Add(b.TaxesPaid)
	}
	return total.LessThanOrEqual(simplifiedMethodLimit(in.FilingStatus))
}

func calculateBasket(b BasketInput, incomeBase, taxBase decimal.Decimal, currentYear int) BasketResult {
	br := BasketResult{Category: b.Category}

	net := b.GrossForeignIncome.
		Sub(b.DefinitelyRelatedDeductions).
		Sub(b.AllocatedDeductions).
		Sub(b.LossesFromOtherCategories)
	br.NetForeignIncome = money.ClampNonNegative(net)

	ratio := decimal.Zero
	if incomeBase.GreaterThan(decimal.Zero) {
		ratio = br.NetForeignIncome.Div(incomeBase)
		ratio = decimal.Min(ratio, decimal.NewFromInt(1))
	}
	br.Limitation = taxBase.Mul(ratio)

	br.CreditBeforeCarryover = decimal.Min(b.TaxesPaid, br.Limitation)
	br.CreditAllowed = br.CreditBeforeCarryover

	excessTaxes := money.ClampNonNegative(b.TaxesPaid.Sub(br.Limitation))
	br.NewCarryforward = excessTaxes

	excessLimitation := money.ClampNonNegative(br.Limitation.Sub(b.TaxesPaid))
	if excessLimitation.GreaterThan(decimal.Zero) && len(b.Carryovers) > 0 {
		consumptions := sequencing.Consume(sequencing.WrapFTCCarryovers(b.Carryovers), excessLimitation, currentYear)
		for _, c := range consumptions {
			br.CarryoverUsed = br.CarryoverUsed.Add(c.Used)
			br.ExpiredCarryovers = br.ExpiredCarryovers.Add(c.Expired)
		}
		br.CreditAllowed = br.CreditAllowed.Add(br.CarryoverUsed)
		br.UpdatedCarryovers = sequencing.ApplyFTC(b.Carryovers, consumptions)
	}

	return br
}
