// Package engine implements FederalEngine, the orchestration layer that
// dispatches every form package against one TaxReturn in the dependency
// order spec.md §9 describes: the pre-AGI income forms first (Forms
// 8814/8606/982/5471, each of which changes the amount of income reaching
// AGI), then Schedule 1/SE tax (independent of AGI), the passive-activity
// loss limitation before AGI is finalized, then AMT, MTC, and the
// remaining credit forms against the resulting regular tax. Grounded on
// the teacher's internal/calculation orchestration in the now-superseded
// engine.go (one calculator composing several others, each dispatched
// only when its inputs are present).
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/calculation"
	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/forms/form1116"
	"github.com/rgehrsitz/taxengine/internal/forms/form5329"
	"github.com/rgehrsitz/taxengine/internal/forms/form5471"
	"github.com/rgehrsitz/taxengine/internal/forms/form5884"
	"github.com/rgehrsitz/taxengine/internal/forms/form6251"
	"github.com/rgehrsitz/taxengine/internal/forms/form8582"
	"github.com/rgehrsitz/taxengine/internal/forms/form8606"
	"github.com/rgehrsitz/taxengine/internal/forms/form8801"
	"github.com/rgehrsitz/taxengine/internal/forms/form8814"
	"github.com/rgehrsitz/taxengine/internal/forms/form8863"
	"github.com/rgehrsitz/taxengine/internal/forms/form982"
	"github.com/rgehrsitz/taxengine/internal/forms/schedule1"
	"github.com/rgehrsitz/taxengine/internal/money"
	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

// Result is the federal engine's full computed output: every dispatched
// form's detail, the aggregate tax lines, and the carryover state the
// caller persists for next year.
type Result struct {
	AGI                   decimal.Decimal
	Deduction             decimal.Decimal
	QBIDeductionAllowed   decimal.Decimal
	TaxableIncome         decimal.Decimal
	RegularTax            decimal.Decimal
	SETax                 decimal.Decimal
	AMT                   decimal.Decimal
	AdditionalTaxes       decimal.Decimal
	TotalTaxBeforeCredits decimal.Decimal
	NonrefundableCredits  decimal.Decimal
	RefundableCredits     decimal.Decimal
	TotalTax              decimal.Decimal

	Schedule1           schedule1.Result
	PAL                 *form8582.Result
	AMTDetail           *form6251.Result
	MTC                 *form8801.Result
	FTC                 *form1116.Result
	WOTC                *form5884.Result
	Education           *form8863.Result
	ChildUnearned       *form8814.Result
	ExcessContributions *form5329.Result
	IRABasis            *form8606.Result
	DebtDischarge       *form982.Result
	CFC                 *form5471.Result

	UpdatedCarryovers domain.CarryoverState
}

// FederalEngine orchestrates every form package against one tax year's
// closed constant table.
type FederalEngine struct {
	cfg *config.YearConfig
}

// New builds a FederalEngine over the given year table.
func New(cfg *config.YearConfig) *FederalEngine {
	return &FederalEngine{cfg: cfg}
}

// Calculate computes the full federal return for tr. tr.Carryovers is
// read-only; the returned Result's UpdatedCarryovers is what the caller
// persists for next year. Each optional form dispatches only when its
// input field on tr is present, per spec.md §9's tagged-variant
// dispatch rule.
func (e *FederalEngine) Calculate(tr domain.TaxReturn) (*Result, error) {
	r := &Result{UpdatedCarryovers: tr.Carryovers.DeepCopy()}
	status := tr.Taxpayer.FilingStatus

	// Pre-AGI income forms: each changes the amount of income reaching
	// Form 1040 Line 9, so all four run before AGI is assembled.
	var childIncluded, iraTaxable, codTaxable, cfcInclusion decimal.Decimal

	if tr.ChildUnearnedIncomeInput != nil {
		res := form8814.Calculate(*tr.ChildUnearnedIncomeInput)
		r.ChildUnearned = &res
		childIncluded = res.TotalIncludedAmount
	}

	if tr.IRABasisInput != nil {
		res := form8606.Calculate(*tr.IRABasisInput)
		r.IRABasis = &res
		iraTaxable = res.PartI.TaxableDistribution.Add(res.PartIII.TotalTaxable)
	}

	if tr.DebtDischargeInput != nil {
		res, err := form982.Calculate(*tr.DebtDischargeInput)
		if err != nil {
			return nil, taxerr.Wrap(taxerr.KindComputationError, err, "form982: debt discharge exclusion")
		}
		r.DebtDischarge = &res
		codTaxable = res.TaxableAmount
	}

	if len(tr.ControlledForeignCorps) > 0 {
		res := form5471.Calculate(tr.ControlledForeignCorps)
		r.CFC = &res
		cfcInclusion = res.TotalSubpartFInclusion.Add(res.TotalGILTIInclusion)
	}

	// Schedule 1 / SE tax: independent of AGI.
	sch1Result := schedule1.Calculate(schedule1.Input{
		Schedule1:               tr.Schedule1,
		NetSelfEmploymentIncome: tr.Income.BusinessIncome,
		FilingStatus:            status,
		WagesAlreadySubjectToSS: tr.Income.TotalWages(),
	}, e.cfg)
	r.Schedule1 = sch1Result
	r.SETax = sch1Result.SEResult.TotalTax

	// Social Security benefit taxability (up to 85% includable under the
	// provisional-income formula) is not modeled separately; benefits are
	// fully included here, a documented simplification (DESIGN.md).
	nonPassiveOrdinary := tr.Income.TotalWages().
		Add(tr.Income.BusinessIncome).
		Add(tr.Income.InterestIncome).
		Add(tr.Income.OrdinaryDividends).
		Add(tr.Income.CapitalGainsLongTerm).
		Add(tr.Income.CapitalGainsShortTerm).
		Add(tr.Income.TotalK1OrdinaryIncome()).
		Add(tr.Income.RetirementDistributions).
		Add(tr.Income.SocialSecurityBenefits).
		Add(childIncluded).
		Add(iraTaxable).
		Add(codTaxable).
		Add(cfcInclusion)

	// Passive activity loss limitation (Form 8582): one pass. MAGI is
	// estimated by including passive net income/loss unlimited; the
	// special-allowance-limited amount then replaces that unlimited
	// figure in the final AGI (per the PAL/MAGI fixpoint decision: PAL
	// suspension doesn't reopen the MAGI definition, so one pass suffices).
	var palNet decimal.Decimal
	if len(tr.Income.PassiveActivities) > 0 {
		unlimitedPALNet := decimal.Zero
		for _, a := range tr.Income.PassiveActivities {
			unlimitedPALNet = unlimitedPALNet.Add(a.NetIncome())
		}
		magiEstimate := nonPassiveOrdinary.
			Add(sch1Result.Line8AdditionalIncome).
			Sub(sch1Result.Line10Adjustments).
			Add(unlimitedPALNet)

		palResult := form8582.Calculate(form8582.Input{
			Activities:   tr.Income.PassiveActivities,
			MAGI:         magiEstimate,
			FilingStatus: status,
		})
		r.PAL = &palResult
		palNet = palActivityNetIncome(palResult)
	}

	agi := nonPassiveOrdinary.
		Add(sch1Result.Line8AdditionalIncome).
		Sub(sch1Result.Line10Adjustments).
		Add(palNet)
	r.AGI = agi

	if tr.Deductions.UseItemized {
		r.Deduction = tr.Deductions.Itemized.Total(agi)
	} else {
		r.Deduction = e.cfg.StandardDeductionFor(tr.Taxpayer)
	}

	taxableBeforeQBI := calculation.TaxableIncome(agi, r.Deduction)
	qbiCap := taxableBeforeQBI.Mul(decimal.NewFromFloat(0.20))
	qbi := decimal.Min(sch1Result.QBIDeduction, qbiCap)
	if qbi.IsNegative() {
		qbi = decimal.Zero
	}
	r.QBIDeductionAllowed = qbi
	r.TaxableIncome = money.Round2(money.ClampNonNegative(taxableBeforeQBI.Sub(qbi)))

	r.RegularTax = money.Round2(calculation.NewFederalTaxCalculator(e.cfg).Calculate(r.TaxableIncome, status))

	amtResult := form6251.New(e.cfg).Calculate(form6251.Input{
		FilingStatus:         status,
		RegularTaxableIncome: r.TaxableIncome,
		RegularTaxForAMT:     r.RegularTax,
		UseItemized:          tr.Deductions.UseItemized,
		SALTDeducted:         tr.Deductions.Itemized.StateAndLocalTax,
		AMTItems:             tr.Income.AMTItems,
	})
	r.AMTDetail = &amtResult
	r.AMT = amtResult.AMT

	r.TotalTaxBeforeCredits = r.RegularTax.Add(r.AMT).Add(r.SETax)

	var nonrefundable, refundable decimal.Decimal

	if tr.Carryovers.PriorYearAMT != nil || len(tr.Carryovers.MTCCarryforwards) > 0 {
		mtcResult := form8801.Calculate(form8801.Input{
			PriorYearAMT:  tr.Carryovers.PriorYearAMT,
			Carryforwards: tr.Carryovers.MTCCarryforwards,
			RegularTax:    r.RegularTax,
			TMT:           amtResult.TentativeMinimumTax,
		})
		r.MTC = &mtcResult
		nonrefundable = nonrefundable.Add(mtcResult.CreditAllowed)
		r.UpdatedCarryovers.MTCCarryforwards = mtcResult.UpdatedCarryforwards
	}

	if tr.ForeignTaxCreditInput != nil {
		ftcResult := e.calculateFTC(*tr.ForeignTaxCreditInput, tr.Carryovers.FTCCarryovers, status, r.TaxableIncome, r.RegularTax, amtResult, tr.TaxYear)
		r.FTC = &ftcResult
		nonrefundable = nonrefundable.Add(ftcResult.TotalCreditAllowed)
		r.UpdatedCarryovers.FTCCarryovers = flattenFTCCarryovers(ftcResult)
	}

	if len(tr.Credits.WOTCEmployees) > 0 {
		wotcResult := form5884.Calculate(tr.Credits.WOTCEmployees, e.cfg)
		r.WOTC = &wotcResult
		nonrefundable = nonrefundable.Add(wotcResult.TotalCredit)
	}

	if tr.EducationCreditsInput != nil {
		eduResult := form8863.Calculate(*tr.EducationCreditsInput, status, e.cfg)
		r.Education = &eduResult
		nonrefundable = nonrefundable.Add(eduResult.AOTCNonrefundable).Add(eduResult.LLCAfterPhaseout)
		refundable = refundable.Add(eduResult.AOTCRefundable)
	}

	if tr.ExcessContributionInput != nil {
		excessResult := form5329.Calculate(form5329.Input{ExcessContributionInput: *tr.ExcessContributionInput})
		r.ExcessContributions = &excessResult
		r.AdditionalTaxes = r.AdditionalTaxes.Add(excessResult.TotalTax)
	}

	r.TotalTaxBeforeCredits = r.TotalTaxBeforeCredits.Add(r.AdditionalTaxes)
	r.NonrefundableCredits = decimal.Min(nonrefundable, r.TotalTaxBeforeCredits)
	r.RefundableCredits = refundable
	r.TotalTax = money.ClampNonNegative(r.TotalTaxBeforeCredits.Sub(r.NonrefundableCredits)).Sub(r.RefundableCredits)

	return r, nil
}

// palActivityNetIncome sums the amount each activity actually contributes
// to AGI this year: a materially-participating activity's full net; a
// profitable passive activity's net, reduced by any suspended-loss
// release Part III applied to it; a loss passive activity's
// allowed loss only (the unallowed remainder stays suspended).
func palActivityNetIncome(r form8582.Result) decimal.Decimal {
	total := decimal.Zero
	for _, ar := range r.Activities {
		if ar.MaterialParticipation {
			total = total.Add(ar.NetIncomeOrLoss)
			continue
		}
		if ar.NetIncomeOrLoss.IsNegative() {
			total = total.Sub(ar.AllowedLoss)
		} else {
			total = total.Add(ar.NetIncomeOrLoss.Sub(ar.AllowedLoss))
		}
	}
	return total
}

// calculateFTC groups the return's per-country foreign taxes into Form
// 1116's separate-limitation baskets by category and dispatches the
// form. The domain model tracks foreign tax paid per country/category
// but not foreign-source gross income separately from it; this engine
// uses each basket's total taxes paid as its gross foreign income
// figure too (a documented simplification for the net-foreign-income
// ratio, flagged in DESIGN.md — a caller with real Schedule B/E-sourced
// income detail should populate a richer basket upstream before this
// form is asked to compute a limitation below 100%).
func (e *FederalEngine) calculateFTC(in domain.ForeignTaxCreditInput, carryovers []domain.FTCCarryover, status domain.FilingStatus, taxableIncome, regularTax decimal.Decimal, amt form6251.Result, currentYear int) form1116.Result {
	byCategory := map[domain.FTCCategory]*form1116.BasketInput{}
	var order []domain.FTCCategory

	basketFor := func(cat domain.FTCCategory) *form1116.BasketInput {
		if b, ok := byCategory[cat]; ok {
			return b
		}
		b := &form1116.BasketInput{Category: cat}
		byCategory[cat] = b
		order = append(order, cat)
		return b
	}

	for _, t := range in.Taxes {
		b := basketFor(t.Category)
		b.TaxesPaid = b.TaxesPaid.Add(t.Amount)
		b.GrossForeignIncome = b.GrossForeignIncome.Add(t.Amount)
	}
	for _, c := range carryovers {
		b := basketFor(c.Category)
		b.Carryovers = append(b.Carryovers, c)
	}

	baskets := make([]form1116.BasketInput, 0, len(order))
	for _, cat := range order {
		baskets = append(baskets, *byCategory[cat])
	}

	return form1116.Calculate(form1116.Input{
		FilingStatus:          status,
		Baskets:               baskets,
		TotalTaxableIncome:    taxableIncome,
		TotalTaxBeforeCredits: regularTax,
		UseAMT:                amt.HasAMTLiability,
		AMTI:                  in.AMTI,
		TMT:                   amt.TentativeMinimumTax,
		CurrentYear:           currentYear,
	})
}

// flattenFTCCarryovers collects every basket's updated carryover records
// into the single slice domain.CarryoverState.FTCCarryovers expects.
func flattenFTCCarryovers(r form1116.Result) []domain.FTCCarryover {
	var out []domain.FTCCarryover
	for _, b := range r.Baskets {
		out = append(out, b.UpdatedCarryovers...)
	}
	return out
}
