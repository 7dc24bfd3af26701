// Package schedule1 computes Form 1040 Lines 8 and 10 from a return's
// Schedule 1, wiring in the SE-tax deduction from internal/calculation,
// grounded on original_source/src/models/schedule_1.py and spec.md §4.1.
package schedule1

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/calculation"
	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

// Input is Schedule 1's self-contained input: the return's Schedule 1
// plus whatever net self-employment income feeds the SE-tax deduction.
type Input struct {
	Schedule1 domain.Schedule1

	NetSelfEmploymentIncome decimal.Decimal
	FilingStatus            domain.FilingStatus
	WagesAlreadySubjectToSS decimal.Decimal
}

// Result is Schedule 1's computed lines.
type Result struct {
	Line8AdditionalIncome decimal.Decimal // flows into Form 1040 Line 9/AGI
	Line10Adjustments     decimal.Decimal // flows out of AGI

	SEResult     calculation.SEResult
	QBIDeduction decimal.Decimal
}

// Calculate computes Schedule 1's two lines, deriving the SE-tax
// deduction (the Adjustments section's half-of-SE-tax line) from net SE
// income rather than requiring the caller to pre-populate it.
func Calculate(in Input, cfg *config.YearConfig) Result {
	r := Result{}

	se := calculation.NewSECalculator(cfg).
		Calculate(in.NetSelfEmploymentIncome, in.FilingStatus, in.WagesAlreadySubjectToSS)
	r.SEResult = se
	r.QBIDeduction = calculation.QBIDeduction(in.NetSelfEmploymentIncome, se.Deduction)

	adjustments := in.Schedule1.Adjustments
	adjustments.SETaxDeduction = se.Deduction

	r.Line8AdditionalIncome = in.Schedule1.AdditionalIncome.Total()
	r.Line10Adjustments = adjustments.Total()

	return r
}
