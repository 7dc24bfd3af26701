package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

// netEarningsFactor is the statutory 92.35% reduction applied to net SE
// income before FICA-equivalent rates are applied (IRC §1402(a)).
var netEarningsFactor = decimal.NewFromFloat(0.9235)

// SECalculator computes self-employment tax: Social Security (wage-base
// capped) plus Medicare (uncapped) plus the additional Medicare surtax
// above the filing-status threshold, grounded on the teacher's
// FICACalculator/ficaOnPerson structure in the now-superseded taxes.go.
type SECalculator struct {
	cfg *config.YearConfig
}

// NewSECalculator builds a calculator over the given year table.
func NewSECalculator(cfg *config.YearConfig) *SECalculator {
	return &SECalculator{cfg: cfg}
}

// SEResult is the SE-tax computation's breakdown.
type SEResult struct {
	NetEarnings       decimal.Decimal // net business income * 92.35%
	SocialSecurityTax decimal.Decimal
	MedicareTax       decimal.Decimal
	AdditionalMedicareTax decimal.Decimal
	TotalTax          decimal.Decimal
	Deduction         decimal.Decimal // half of TotalTax, Schedule 1 Line 15
}

// Calculate computes SE tax on netBusinessIncome for the given filing
// status. wagesAlreadySubjectToSS reduces the Social Security wage base
// available (a taxpayer with W-2 wages and SE income shares one wage
// base across both).
func (c *SECalculator) Calculate(netBusinessIncome decimal.Decimal, status domain.FilingStatus, wagesAlreadySubjectToSS decimal.Decimal) SEResult {
	if netBusinessIncome.Sign() <= 0 {
		return SEResult{}
	}

	netEarnings := netBusinessIncome.Mul(netEarningsFactor)

	ssBase := c.cfg.FICA.SSWageBase.Sub(wagesAlreadySubjectToSS)
	if ssBase.IsNegative() {
		ssBase = decimal.Zero
	}
	ssTaxableEarnings := netEarnings
	if ssTaxableEarnings.GreaterThan(ssBase) {
		ssTaxableEarnings = ssBase
	}
	ssTax := ssTaxableEarnings.Mul(c.cfg.FICA.SSRate)

	medicareTax := netEarnings.Mul(c.cfg.FICA.MedicareRate)

	threshold := c.cfg.FICA.AdditionalMedicareThreshold[status]
	additionalBase := netEarnings.Sub(threshold)
	if additionalBase.IsNegative() {
		additionalBase = decimal.Zero
	}
	additionalTax := additionalBase.Mul(c.cfg.FICA.AdditionalMedicareRate)

	total := ssTax.Add(medicareTax).Add(additionalTax)

	return SEResult{
		NetEarnings:           netEarnings,
		SocialSecurityTax:     ssTax,
		MedicareTax:           medicareTax,
		AdditionalMedicareTax: additionalTax,
		TotalTax:              total,
		Deduction:             total.Div(decimal.NewFromInt(2)),
	}
}

// QBIDeduction computes the tentative Section 199A deduction before the
// taxable-income cap: 20% of (net business income - the SE-tax
// deduction).
func QBIDeduction(netBusinessIncome, seDeduction decimal.Decimal) decimal.Decimal {
	base := netBusinessIncome.Sub(seDeduction)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base.Mul(decimal.NewFromFloat(0.20))
}
