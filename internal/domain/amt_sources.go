package domain

import "github.com/shopspring/decimal"

// ISOExercise is one incentive-stock-option exercise event. Spread =
// shares * max(0, FMVAtExercise - ExercisePrice), unless SameYearSale
// (disqualifying disposition) zeroes it — computed by form6251, not here.
type ISOExercise struct {
	Shares        decimal.Decimal
	ExercisePrice decimal.Decimal
	FMVAtExercise decimal.Decimal
	SameYearSale  bool
}

// PrivateActivityBond is one PAB interest source. Only interest marked
// PostAug071986 is an AMT preference item.
type PrivateActivityBond struct {
	InterestIncome decimal.Decimal
	PostAug071986  bool
}

// DepreciationAdjustment is one asset's MACRS-vs-ADS difference. MACRS -
// ADS may be negative in later years of an asset's life.
type DepreciationAdjustment struct {
	MACRS decimal.Decimal
	ADS   decimal.Decimal
}

// AMTAdjustment is a catch-all enumerated adjustment not otherwise
// modeled (investment interest expense, adjusted gain/loss, tax-refund
// reversal, etc.), carried as a labeled amount.
type AMTAdjustment struct {
	Description string
	Amount      decimal.Decimal
}
