package domain

import "github.com/shopspring/decimal"

// ActivityType classifies a PassiveActivity for §4.3's basket rules.
type ActivityType string

const (
	ActivityRentalRealEstate  ActivityType = "rental_real_estate"
	ActivityOtherPassive      ActivityType = "other_passive"
	ActivityWorkingInterestOG ActivityType = "working_interest_oil_gas" // never passive
	ActivityPTP               ActivityType = "publicly_traded_partnership"
)

// PassiveActivity is one activity's annual facts plus the hour inputs the
// material-participation tests read. An activity is either passive or not
// at a point in time; the seven-test collapse into MaterialParticipation
// is computed by form8582, not stored here — PassiveActivity only holds
// the witnessed hour quantities the tests are computed from, so the
// result is stable across any permutation of inputs that preserves those
// quantities.
type PassiveActivity struct {
	ID           string
	ActivityType ActivityType

	GrossIncome            decimal.Decimal
	Deductions             decimal.Decimal
	PriorYearUnallowedLoss decimal.Decimal

	// Hour inputs feeding the material-participation tests.
	TaxpayerHours           decimal.Decimal
	SpouseHours             decimal.Decimal
	TotalActivityHours      decimal.Decimal // for the "substantially all" test
	OtherIndividualMaxHours decimal.Decimal // for the ">=100 hours and not less than anyone else" test

	// Real-estate-professional test inputs.
	RealPropertyHours decimal.Decimal
	TotalWorkHours    decimal.Decimal

	IsActiveParticipant bool // eligibility gate for the $25,000 special allowance

	// Disposed marks a complete taxable disposition of the activity in
	// this tax year, releasing its suspended losses.
	Disposed bool
}

// NetIncome is GrossIncome - Deductions for the current year only
// (excludes PriorYearUnallowedLoss, which is added in separately by the
// form once baskets are assembled).
func (p PassiveActivity) NetIncome() decimal.Decimal {
	return p.GrossIncome.Sub(p.Deductions)
}
