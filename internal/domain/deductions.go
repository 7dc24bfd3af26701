package domain

import "github.com/shopspring/decimal"

// Deductions selects standard vs. itemized and carries the itemized line
// items when UseItemized is true.
type Deductions struct {
	UseItemized bool
	Itemized    ItemizedDeductions
}

// ItemizedDeductions holds Schedule A's relevant lines. StateAndLocalTax
// is the pre-cap amount; the $10,000 SALT cap is applied by the forms
// that read it (Schedule A itself and Form 6251's addback), not here.
type ItemizedDeductions struct {
	MedicalExpenses          decimal.Decimal
	StateAndLocalTax         decimal.Decimal
	MortgageInterest         decimal.Decimal
	CharitableContributions  decimal.Decimal
	InvestmentInterestExpense decimal.Decimal
	Other                    decimal.Decimal
}

// SALTCap is the statutory cap on the state-and-local-tax deduction.
var SALTCap = decimal.NewFromInt(10000)

// CappedSALT returns StateAndLocalTax capped at SALTCap.
func (i ItemizedDeductions) CappedSALT() decimal.Decimal {
	if i.StateAndLocalTax.GreaterThan(SALTCap) {
		return SALTCap
	}
	return i.StateAndLocalTax
}

// MedicalFloorRate is the AGI floor below which medical expenses are not
// deductible.
var MedicalFloorRate = decimal.NewFromFloat(0.075)

// DeductibleMedical applies the 7.5%-of-AGI floor. AGI must be read after
// Schedule 1 aggregation, per spec §9.
func (i ItemizedDeductions) DeductibleMedical(agi decimal.Decimal) decimal.Decimal {
	floor := agi.Mul(MedicalFloorRate)
	d := i.MedicalExpenses.Sub(floor)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Total sums the itemized lines using the capped SALT figure and the
// AGI-floored medical deduction. AGI must be read after Schedule 1
// aggregation, per spec §9.
func (i ItemizedDeductions) Total(agi decimal.Decimal) decimal.Decimal {
	return i.CappedSALT().
		Add(i.DeductibleMedical(agi)).
		Add(i.MortgageInterest).
		Add(i.CharitableContributions).
		Add(i.InvestmentInterestExpense).
		Add(i.Other)
}
