package domain

import "github.com/shopspring/decimal"

// W2Form is one wage statement.
type W2Form struct {
	Employer string
	Wages    decimal.Decimal
	FederalWithholding decimal.Decimal
}

// K1Form is one partnership/S-corp K-1's taxable lines relevant here.
type K1Form struct {
	Entity            string
	OrdinaryIncome    decimal.Decimal
	PassiveActivityID string // non-empty when this K-1 feeds a PassiveActivity
}

// Income is the return's income aggregate. Amounts are non-negative
// unless explicitly signed (capital gains/losses may be negative).
// AMTItems is nil when the taxpayer has no AMT preference items —
// explicit-presence tagging rather than a duck-typed optional attribute,
// per spec §9.
type Income struct {
	W2s []W2Form
	K1s []K1Form

	InterestIncome        decimal.Decimal
	OrdinaryDividends     decimal.Decimal
	QualifiedDividends    decimal.Decimal
	CapitalGainsLongTerm  decimal.Decimal
	CapitalGainsShortTerm decimal.Decimal

	// BusinessIncome is net self-employment income (Schedule C/F net,
	// before the SE-tax deduction).
	BusinessIncome decimal.Decimal

	PassiveActivities []PassiveActivity

	RetirementDistributions decimal.Decimal
	SocialSecurityBenefits  decimal.Decimal

	AMTItems *AMTItems
}

// AMTItems groups the AMT preference-item sources an Income optionally
// carries: ISO exercises, private activity bond interest, depreciation
// differences, and any other enumerated adjustment.
type AMTItems struct {
	ISOExercises            []ISOExercise
	PrivateActivityBonds    []PrivateActivityBond
	DepreciationAdjustments []DepreciationAdjustment
	OtherAdjustments        []AMTAdjustment
}

// TotalWages sums every W-2's wages.
func (i Income) TotalWages() decimal.Decimal {
	total := decimal.Zero
	for _, w := range i.W2s {
		total = total.Add(w.Wages)
	}
	return total
}

// TotalK1OrdinaryIncome sums K-1 ordinary income not already routed
// through a PassiveActivity (PassiveActivityID empty).
func (i Income) TotalK1OrdinaryIncome() decimal.Decimal {
	total := decimal.Zero
	for _, k := range i.K1s {
		if k.PassiveActivityID == "" {
			total = total.Add(k.OrdinaryIncome)
		}
	}
	return total
}

// DeepCopy returns an Income sharing no backing arrays or pointed-to
// structs with the receiver.
func (i Income) DeepCopy() Income {
	cp := i
	cp.W2s = append([]W2Form(nil), i.W2s...)
	cp.K1s = append([]K1Form(nil), i.K1s...)
	cp.PassiveActivities = append([]PassiveActivity(nil), i.PassiveActivities...)
	if i.AMTItems != nil {
		items := *i.AMTItems
		items.ISOExercises = append([]ISOExercise(nil), i.AMTItems.ISOExercises...)
		items.PrivateActivityBonds = append([]PrivateActivityBond(nil), i.AMTItems.PrivateActivityBonds...)
		items.DepreciationAdjustments = append([]DepreciationAdjustment(nil), i.AMTItems.DepreciationAdjustments...)
		items.OtherAdjustments = append([]AMTAdjustment(nil), i.AMTItems.OtherAdjustments...)
		cp.AMTItems = &items
	}
	return cp
}
