package domain

import "github.com/shopspring/decimal"

// FTCCategory is one of Form 1116's separate limitation baskets.
type FTCCategory string

const (
	FTCCategoryGILTI           FTCCategory = "section_951a_gilti"
	FTCCategoryForeignBranch   FTCCategory = "foreign_branch"
	FTCCategoryPassive         FTCCategory = "passive"
	FTCCategoryGeneral         FTCCategory = "general"
	FTCCategorySection901j     FTCCategory = "section_901j"
	FTCCategoryLumpSum         FTCCategory = "lump_sum"
	FTCCategoryTreatyResourced FTCCategory = "treaty_resourced"
)

// ForeignCountryTax is one per-country foreign tax record feeding a
// basket's gross foreign taxes paid.
type ForeignCountryTax struct {
	Country  string
	Category FTCCategory
	Amount   decimal.Decimal
}

// FTCCarryover is a FIFO-consumed foreign-tax-credit carryover record: 1
// year carryback, 10 years carryforward, tracked per basket.
type FTCCarryover struct {
	Category      FTCCategory
	OriginYear    int
	OriginalAmount decimal.Decimal
	UsedAmount    decimal.Decimal
}

// Remaining is OriginalAmount - UsedAmount, never negative by
// construction (consumption never exceeds OriginalAmount).
func (c FTCCarryover) Remaining() decimal.Decimal {
	r := c.OriginalAmount.Sub(c.UsedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Expired reports whether c has aged past its maximum carryforward life
// as of asOfYear, for the 1-year-back/10-year-forward window.
func (c FTCCarryover) Expired(asOfYear, maxForwardYears int) bool {
	return asOfYear > c.OriginYear+maxForwardYears
}
