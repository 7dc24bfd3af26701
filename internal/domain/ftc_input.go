package domain

import "github.com/shopspring/decimal"

// ForeignTaxCreditInput groups the per-country foreign tax records Form
// 1116 buckets into its separate limitation baskets. AMTI is the
// taxpayer's alternative minimum taxable income, used for the AMT FTC
// limitation ratio; when zero (not supplied) Form 1116 falls back to the
// regular-tax ratio, a known approximation flagged in spec §9.
type ForeignTaxCreditInput struct {
	Taxes []ForeignCountryTax
	AMTI  decimal.Decimal
}

// DeepCopy returns a copy sharing no backing array with the receiver.
func (in ForeignTaxCreditInput) DeepCopy() ForeignTaxCreditInput {
	cp := in
	cp.Taxes = append([]ForeignCountryTax(nil), in.Taxes...)
	return cp
}
