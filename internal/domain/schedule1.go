package domain

import "github.com/shopspring/decimal"

// OtherIncomeItem is one itemized Schedule 1 Line 8z entry.
type OtherIncomeItem struct {
	Description string
	Amount      decimal.Decimal
}

// OtherAdjustmentItem is one itemized Schedule 1 Line 24z entry.
type OtherAdjustmentItem struct {
	Description string
	Amount      decimal.Decimal
}

// Schedule1AdditionalIncome is Schedule 1 Part I: additional income that
// flows to Form 1040 Line 8 (and from there into AGI).
type Schedule1AdditionalIncome struct {
	TaxableRefunds        decimal.Decimal
	AlimonyReceived       decimal.Decimal
	BusinessIncome        decimal.Decimal // Schedule C net, can be negative
	OtherGainsLosses      decimal.Decimal // Form 4797, can be negative
	RentalIncome          decimal.Decimal // Schedule E net, can be negative
	FarmIncome            decimal.Decimal // Schedule F net, can be negative
	UnemploymentComp      decimal.Decimal
	NOLDeduction          decimal.Decimal // subtracted
	GamblingIncome        decimal.Decimal
	CODIncome             decimal.Decimal
	ForeignIncomeExclusion decimal.Decimal // subtracted (Form 2555)
	TaxableHSADistribution decimal.Decimal
	AlaskaPFD             decimal.Decimal
	OtherItems            []OtherIncomeItem
}

// Total is Line 9: the sum that flows to Form 1040 Line 8.
func (a Schedule1AdditionalIncome) Total() decimal.Decimal {
	total := a.TaxableRefunds.
		Add(a.AlimonyReceived).
		Add(a.BusinessIncome).
		Add(a.OtherGainsLosses).
		Add(a.RentalIncome).
		Add(a.FarmIncome).
		Add(a.UnemploymentComp).
		Sub(a.NOLDeduction).
		Add(a.GamblingIncome).
		Add(a.CODIncome).
		Sub(a.ForeignIncomeExclusion).
		Add(a.TaxableHSADistribution).
		Add(a.AlaskaPFD)
	for _, item := range a.OtherItems {
		total = total.Add(item.Amount)
	}
	return total
}

// Schedule1Adjustments is Schedule 1 Part II: above-the-line adjustments
// that flow to Form 1040 Line 10, reducing AGI.
type Schedule1Adjustments struct {
	EducatorExpenses       decimal.Decimal
	HSADeduction           decimal.Decimal
	SETaxDeduction         decimal.Decimal // half of SE tax, engine-supplied
	SEHealthInsurance      decimal.Decimal
	SEPSimpleContributions decimal.Decimal
	EarlyWithdrawalPenalty decimal.Decimal
	AlimonyPaid            decimal.Decimal
	IRADeduction           decimal.Decimal
	StudentLoanInterest    decimal.Decimal // capped at $2,500 by the caller
	ArcherMSADeduction     decimal.Decimal
	OtherItems             []OtherAdjustmentItem
}

// Total is Line 25+26: the sum that flows to Form 1040 Line 10.
func (a Schedule1Adjustments) Total() decimal.Decimal {
	total := a.EducatorExpenses.
		Add(a.HSADeduction).
		Add(a.SETaxDeduction).
		Add(a.SEHealthInsurance).
		Add(a.SEPSimpleContributions).
		Add(a.EarlyWithdrawalPenalty).
		Add(a.AlimonyPaid).
		Add(a.IRADeduction).
		Add(a.StudentLoanInterest).
		Add(a.ArcherMSADeduction)
	for _, item := range a.OtherItems {
		total = total.Add(item.Amount)
	}
	return total
}

// Schedule1 aggregates Parts I and II. AGI = (income through Form 1040
// Line 9) + AdditionalIncome.Total() - Adjustments.Total().
type Schedule1 struct {
	AdditionalIncome Schedule1AdditionalIncome
	Adjustments      Schedule1Adjustments
}

// Required reports whether Schedule 1 must be attached: any nonzero
// additional income, or any positive adjustment.
func (s Schedule1) Required() bool {
	return !s.AdditionalIncome.Total().IsZero() || s.Adjustments.Total().GreaterThan(decimal.Zero)
}
