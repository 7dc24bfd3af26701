package domain

import "github.com/shopspring/decimal"

// TaxReturn is the aggregate root a caller submits to the pipeline: a
// taxpayer's full filing picture for one tax year. It is constructed by
// the caller, consumed read-only by the pipeline, and never mutated by
// the engine — Calculate returns new values rather than writing back
// into the TaxReturn it was given.
type TaxReturn struct {
	TaxYear    int
	Taxpayer   TaxpayerInfo
	Income     Income
	Deductions Deductions
	Credits    Credits
	Schedule1  Schedule1
	Carryovers CarryoverState

	// Form-specific inputs are nil when the form does not apply to this
	// return; the pipeline dispatches a form only when its input is
	// present (tagged variant fields with explicit presence, not
	// attribute-probing, per spec §9).
	ForeignTaxCreditInput    *ForeignTaxCreditInput
	ExcessContributionInput  *ExcessContributionInput
	ControlledForeignCorps   []ControlledForeignCorpInput
	IRABasisInput            *IRABasisInput
	ChildUnearnedIncomeInput *ChildUnearnedIncomeInput
	EducationCreditsInput    *EducationCreditsInput
	DebtDischargeInput       *DebtDischargeInput
	EntityStructureInput     *EntityStructureInput
}

// DeepCopy returns a TaxReturn sharing no mutable state with the
// receiver: slices and pointer-held sub-structs are copied, not aliased.
func (t TaxReturn) DeepCopy() TaxReturn {
	cp := t

	cp.Income = t.Income.DeepCopy()
	cp.Credits.WOTCEmployees = append([]WOTCEmployee(nil), t.Credits.WOTCEmployees...)
	cp.Credits.Nonrefundable = cloneDecimalMap(t.Credits.Nonrefundable)
	cp.Credits.Refundable = cloneDecimalMap(t.Credits.Refundable)

	cp.Schedule1.AdditionalIncome.OtherItems = append([]OtherIncomeItem(nil), t.Schedule1.AdditionalIncome.OtherItems...)
	cp.Schedule1.Adjustments.OtherItems = append([]OtherAdjustmentItem(nil), t.Schedule1.Adjustments.OtherItems...)

	cp.Carryovers = t.Carryovers.DeepCopy()
	cp.ControlledForeignCorps = append([]ControlledForeignCorpInput(nil), t.ControlledForeignCorps...)

	if t.ForeignTaxCreditInput != nil {
		in := t.ForeignTaxCreditInput.DeepCopy()
		cp.ForeignTaxCreditInput = &in
	}
	if t.ExcessContributionInput != nil {
		in := t.ExcessContributionInput.DeepCopy()
		cp.ExcessContributionInput = &in
	}
	if t.IRABasisInput != nil {
		in := *t.IRABasisInput
		cp.IRABasisInput = &in
	}
	if t.ChildUnearnedIncomeInput != nil {
		in := t.ChildUnearnedIncomeInput.DeepCopy()
		cp.ChildUnearnedIncomeInput = &in
	}
	if t.EducationCreditsInput != nil {
		in := t.EducationCreditsInput.DeepCopy()
		cp.EducationCreditsInput = &in
	}
	if t.DebtDischargeInput != nil {
		in := t.DebtDischargeInput.DeepCopy()
		cp.DebtDischargeInput = &in
	}
	if t.EntityStructureInput != nil {
		in := *t.EntityStructureInput
		cp.EntityStructureInput = &in
	}

	return cp
}

func cloneDecimalMap(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return nil
	}
	cp := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
