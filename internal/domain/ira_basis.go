package domain

import "github.com/shopspring/decimal"

// IRABasisInput is Form 8606's inputs: prior nondeductible basis, the
// current year's nondeductible contribution, the year-end value of all
// traditional/SEP/SIMPLE IRAs (pro-rata denominator), current-year
// distributions and conversions, and the Part III Roth-distribution
// ordering facts (simplified per spec §9's 5-year-window approximation).
type IRABasisInput struct {
	PriorBasis               decimal.Decimal
	CurrentYearNondeductible decimal.Decimal
	YearEndValueAllTradIRAs  decimal.Decimal
	Distributions            decimal.Decimal
	Conversions              decimal.Decimal

	RothContributions        decimal.Decimal // cumulative regular Roth contributions
	RothConversionBasis      decimal.Decimal // cumulative converted amounts already taxed
	RothEarnings             decimal.Decimal
	RothDistribution         decimal.Decimal

	FirstRothContributionYear int
	CurrentYear               int
	Age                       int
	Disabled                  bool
	FirstHomePurchase         bool
	FirstHomePurchaseAmount   decimal.Decimal
	AnyConversionWithinFiveYears bool
}
