// Package calculation holds the federal bracket-walk tax engine and the
// self-employment tax calculator, grounded on the teacher's
// internal/calculation/taxes.go (TaxBracket{Min,Max,Rate} loop-accumulate
// pattern) and generalized to all five filing statuses with TY2025 rates.
package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

// FederalTaxCalculator walks a filing status's bracket table to compute
// ordinary tax on a given taxable income.
type FederalTaxCalculator struct {
	cfg *config.YearConfig
}

// NewFederalTaxCalculator builds a calculator over the given year table.
func NewFederalTaxCalculator(cfg *config.YearConfig) *FederalTaxCalculator {
	return &FederalTaxCalculator{cfg: cfg}
}

// Calculate walks the bracket table for status, summing rate * width of
// taxable income falling in each band. Returns unrounded; callers round
// at the point a line is emitted.
func (c *FederalTaxCalculator) Calculate(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.Sign() <= 0 {
		return decimal.Zero
	}
	table := c.cfg.Brackets[status]
	tax := decimal.Zero
	for _, b := range table {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		top := taxableIncome
		if b.Max != nil && b.Max.LessThan(top) {
			top = *b.Max
		}
		width := top.Sub(b.Min)
		if width.Sign() <= 0 {
			continue
		}
		tax = tax.Add(width.Mul(b.Rate))
	}
	return tax
}

// MarginalRate returns the rate that applies to the next dollar of
// taxableIncome under status's bracket table.
func (c *FederalTaxCalculator) MarginalRate(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	table := c.cfg.Brackets[status]
	for _, b := range table {
		if b.Max == nil || taxableIncome.LessThan(*b.Max) {
			return b.Rate
		}
	}
	return table[len(table)-1].Rate
}

// TaxableIncome computes AGI - deductions, floored at 0, rounded at the
// output boundary.
func TaxableIncome(agi, deductions decimal.Decimal) decimal.Decimal {
	return money.Round2(money.ClampNonNegative(agi.Sub(deductions)))
}
