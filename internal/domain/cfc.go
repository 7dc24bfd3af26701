package domain

import "github.com/shopspring/decimal"

// ControlledForeignCorpInput is one CFC's Form 5471 inclusion inputs:
// Subpart F income (after the high-tax and de minimis/same-country
// exclusions already computed on Schedules C/H) and GILTI tested income,
// scaled by the shareholder's pro rata share.
type ControlledForeignCorpInput struct {
	Name                   string
	IsCFC                  bool
	OwnershipPercent       decimal.Decimal // combined direct + indirect + constructive
	ProRataShare           decimal.Decimal

	GrossSubpartFIncome    decimal.Decimal
	HighTaxExclusion       decimal.Decimal
	DeMinimisExclusion     decimal.Decimal
	SameCountryExclusion   decimal.Decimal

	NetTestedIncome        decimal.Decimal // GILTI tested income, Schedule I-1
	QualifiedBusinessAssetInvestment decimal.Decimal // QBAI, net deemed tangible income return base

	NetEarningsAndProfits  decimal.Decimal // Schedule H total, carried, not recomputed
}
