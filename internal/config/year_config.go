// Package config holds the closed table of tax-year-sensitive constants
// (spec.md §6): standard deductions, bracket thresholds, AMT exemptions
// and phaseouts, SS wage base, SALT cap, and the credit limits below.
// HSA/IRA contribution limits are not in this table: each Form 5329
// excess-contribution record carries its own ContributionLimit. Some form
// packages also hold their own constants rather than reading them from
// here (for example Form 8582's special-allowance amounts and Form 982's
// QPRI cap).
package config

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

// Bracket is one marginal-rate band: income from Min up to (but not
// including) Max is taxed at Rate. A nil Max means "and above".
type Bracket struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal
}

// BracketTable is the ordered, ascending list of Brackets for one filing
// status.
type BracketTable []Bracket

// AMTTable holds Form 6251's per-status exemption and phaseout-start
// constants, plus the (shared) TMT rate-schedule breakpoint.
type AMTTable struct {
	Exemption      decimal.Decimal
	PhaseoutStart  decimal.Decimal
	TMT28PctStart  decimal.Decimal // AMT taxable income above this is taxed at 28% instead of 26%
}

// FICATable holds the Social Security wage base and Medicare rates,
// which do not vary by filing status except for the additional-Medicare
// threshold.
type FICATable struct {
	SSWageBase               decimal.Decimal
	SSRate                   decimal.Decimal
	MedicareRate             decimal.Decimal
	AdditionalMedicareRate   decimal.Decimal
	AdditionalMedicareThreshold map[domain.FilingStatus]decimal.Decimal
}

// YearConfig is the full closed table for one tax year, addressed by
// (TaxYear, FilingStatus) at every lookup.
type YearConfig struct {
	TaxYear int

	StandardDeduction        map[domain.FilingStatus]decimal.Decimal
	AdditionalStandardDeduction decimal.Decimal // per senior/blind instance, all statuses except MFJ-adjacent variants share this in 2025
	AdditionalStandardDeductionMFJ decimal.Decimal

	Brackets map[domain.FilingStatus]BracketTable
	AMT      map[domain.FilingStatus]AMTTable

	FICA FICATable

	SALTCap             decimal.Decimal
	StudentLoanInterestCap decimal.Decimal
	EducatorExpenseCap  decimal.Decimal

	// WOTC wage limits by target group, spec.md §4.12.
	WOTCWageLimit map[domain.WOTCTargetGroup]decimal.Decimal

	// FTC simplified-method thresholds, spec.md §4.4.
	FTCSimplifiedMethodLimit map[domain.FilingStatus]decimal.Decimal

	// Education credit phaseout ranges, spec.md §4.9: {limit, range} per
	// filing-status bucket ("mfj" vs "others"; MFS is disqualified).
	AOTCPhaseoutLimit map[domain.FilingStatus]decimal.Decimal
	AOTCPhaseoutRange map[domain.FilingStatus]decimal.Decimal

	QPRIExclusionCap decimal.Decimal
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic("config: invalid decimal literal " + s)
	}
	return v
}

func maxPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// Load2025 returns the TY2025 closed table, the sole year this system
// specifies (spec.md §1 Non-goals).
func Load2025() *YearConfig {
	return &YearConfig{
		TaxYear: 2025,

		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:                  d("15000"),
			domain.MarriedFilingJointly:    d("30000"),
			domain.MarriedFilingSeparately: d("15000"),
			domain.HeadOfHousehold:         d("22500"),
			domain.QualifyingWidow:         d("30000"),
		},
		AdditionalStandardDeduction:    d("1600"),
		AdditionalStandardDeductionMFJ: d("1300"),

		Brackets: map[domain.FilingStatus]BracketTable{
			domain.Single: {
				{Min: d("0"), Max: maxPtr("11925"), Rate: d("0.10")},
				{Min: d("11925"), Max: maxPtr("48475"), Rate: d("0.12")},
				{Min: d("48475"), Max: maxPtr("103350"), Rate: d("0.22")},
				{Min: d("103350"), Max: maxPtr("197300"), Rate: d("0.24")},
				{Min: d("197300"), Max: maxPtr("250525"), Rate: d("0.32")},
				{Min: d("250525"), Max: maxPtr("626350"), Rate: d("0.35")},
				{Min: d("626350"), Max: nil, Rate: d("0.37")},
			},
			domain.MarriedFilingJointly: {
				{Min: d("0"), Max: maxPtr("23850"), Rate: d("0.10")},
				{Min: d("23850"), Max: maxPtr("96950"), Rate: d("0.12")},
				{Min: d("96950"), Max: maxPtr("206700"), Rate: d("0.22")},
				{Min: d("206700"), Max: maxPtr("394600"), Rate: d("0.24")},
				{Min: d("394600"), Max: maxPtr("501050"), Rate: d("0.32")},
				{Min: d("501050"), Max: maxPtr("751600"), Rate: d("0.35")},
				{Min: d("751600"), Max: nil, Rate: d("0.37")},
			},
			domain.MarriedFilingSeparately: {
				{Min: d("0"), Max: maxPtr("11925"), Rate: d("0.10")},
				{Min: d("11925"), Max: maxPtr("48475"), Rate: d("0.12")},
				{Min: d("48475"), Max: maxPtr("103350"), Rate: d("0.22")},
				{Min: d("103350"), Max: maxPtr("197300"), Rate: d("0.24")},
				{Min: d("197300"), Max: maxPtr("250525"), Rate: d("0.32")},
				{Min: d("250525"), Max: maxPtr("375800"), Rate: d("0.35")},
				{Min: d("375800"), Max: nil, Rate: d("0.37")},
			},
			domain.HeadOfHousehold: {
				{Min: d("0"), Max: maxPtr("17000"), Rate: d("0.10")},
				{Min: d("17000"), Max: maxPtr("64850"), Rate: d("0.12")},
				{Min: d("64850"), Max: maxPtr("103350"), Rate: d("0.22")},
				{Min: d("103350"), Max: maxPtr("197300"), Rate: d("0.24")},
				{Min: d("197300"), Max: maxPtr("250500"), Rate: d("0.32")},
				{Min: d("250500"), Max: maxPtr("626350"), Rate: d("0.35")},
				{Min: d("626350"), Max: nil, Rate: d("0.37")},
			},
			domain.QualifyingWidow: {
				{Min: d("0"), Max: maxPtr("23850"), Rate: d("0.10")},
				{Min: d("23850"), Max: maxPtr("96950"), Rate: d("0.12")},
				{Min: d("96950"), Max: maxPtr("206700"), Rate: d("0.22")},
				{Min: d("206700"), Max: maxPtr("394600"), Rate: d("0.24")},
				{Min: d("394600"), Max: maxPtr("501050"), Rate: d("0.32")},
				{Min: d("501050"), Max: maxPtr("751600"), Rate: d("0.35")},
				{Min: d("751600"), Max: nil, Rate: d("0.37")},
			},
		},

		AMT: map[domain.FilingStatus]AMTTable{
			domain.Single:                  {Exemption: d("88100"), PhaseoutStart: d("626350"), TMT28PctStart: d("232600")},
			domain.MarriedFilingJointly:    {Exemption: d("137000"), PhaseoutStart: d("1252700"), TMT28PctStart: d("232600")},
			domain.MarriedFilingSeparately: {Exemption: d("68500"), PhaseoutStart: d("626350"), TMT28PctStart: d("116300")},
			domain.HeadOfHousehold:         {Exemption: d("88100"), PhaseoutStart: d("626350"), TMT28PctStart: d("232600")},
			domain.QualifyingWidow:         {Exemption: d("137000"), PhaseoutStart: d("1252700"), TMT28PctStart: d("232600")},
		},

		FICA: FICATable{
			SSWageBase: d("176100"),
			// SSRate/MedicareRate are the self-employed combined rates
			// (employer + employee share, per IRC §1401): 12.4% + 2.9%
			// = 15.3%. Payroll-context callers computing one side of a
			// W-2 wage's FICA burden must halve these.
			SSRate:                 d("0.124"),
			MedicareRate:           d("0.029"),
			AdditionalMedicareRate: d("0.009"),
			AdditionalMedicareThreshold: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:                  d("200000"),
				domain.MarriedFilingJointly:    d("250000"),
				domain.MarriedFilingSeparately: d("125000"),
				domain.HeadOfHousehold:         d("200000"),
				domain.QualifyingWidow:         d("200000"),
			},
		},

		SALTCap:                d("10000"),
		StudentLoanInterestCap: d("2500"),
		EducatorExpenseCap:     d("300"),

		WOTCWageLimit: map[domain.WOTCTargetGroup]decimal.Decimal{
			domain.WOTCStandard:              d("6000"),
			domain.WOTCSummerYouth:           d("3000"),
			domain.WOTCDisabledVeteran:       d("12000"),
			domain.WOTCDisabledUnemployedVet: d("24000"),
			domain.WOTCLongTermFamilyAssist:  d("10000"),
		},

		FTCSimplifiedMethodLimit: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:                  d("300"),
			domain.MarriedFilingJointly:    d("600"),
			domain.MarriedFilingSeparately: d("300"),
			domain.HeadOfHousehold:         d("300"),
			domain.QualifyingWidow:         d("300"),
		},

		AOTCPhaseoutLimit: map[domain.FilingStatus]decimal.Decimal{
			domain.MarriedFilingJointly: d("180000"),
			domain.QualifyingWidow:      d("180000"),
			domain.Single:               d("90000"),
			domain.HeadOfHousehold:      d("90000"),
			domain.MarriedFilingSeparately: decimal.Zero,
		},
		AOTCPhaseoutRange: map[domain.FilingStatus]decimal.Decimal{
			domain.MarriedFilingJointly: d("20000"),
			domain.QualifyingWidow:      d("20000"),
			domain.Single:               d("10000"),
			domain.HeadOfHousehold:      d("10000"),
			domain.MarriedFilingSeparately: decimal.Zero,
		},

		QPRIExclusionCap: d("750000"),
	}
}

// StandardDeductionFor returns the base standard deduction plus the
// additional-senior/blind amounts for the given taxpayer.
func (c *YearConfig) StandardDeductionFor(t domain.TaxpayerInfo) decimal.Decimal {
	base := c.StandardDeduction[t.FilingStatus]
	additional := c.AdditionalStandardDeduction
	if t.FilingStatus == domain.MarriedFilingJointly || t.FilingStatus == domain.QualifyingWidow || t.FilingStatus == domain.MarriedFilingSeparately {
		additional = c.AdditionalStandardDeductionMFJ
	}
	n := t.SeniorCount() + t.BlindCount()
	return base.Add(additional.Mul(decimal.NewFromInt(int64(n))))
}
