package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

func wagesReturn(wages string) domain.TaxReturn {
	return domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income: domain.Income{
			W2s: []domain.W2Form{{Wages: decimal.RequireFromString(wages)}},
		},
	}
}

func TestSimpleWageReturnComputesRegularTax(t *testing.T) {
	e := New(config.Load2025())
	result, err := e.Calculate(wagesReturn("80000"))
	require.NoError(t, err)

	assert.True(t, result.AGI.Equal(decimal.NewFromInt(80000)))
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(65000))) // 80000 - 15000 standard deduction
	assert.True(t, result.RegularTax.GreaterThan(decimal.Zero))
	assert.True(t, result.TotalTax.Equal(result.RegularTax))
	assert.Nil(t, result.PAL)
	assert.True(t, result.AMT.IsZero())
}

func TestSelfEmploymentIncomeAddsSETaxAndDeduction(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income:   domain.Income{BusinessIncome: decimal.NewFromInt(100000)},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)

	assert.True(t, result.SETax.GreaterThan(decimal.Zero))
	// half of SE tax is an above-the-line deduction, so AGI is less than
	// gross business income.
	assert.True(t, result.AGI.LessThan(decimal.NewFromInt(100000)))
	assert.True(t, result.Schedule1.QBIDeduction.GreaterThan(decimal.Zero))
}

func TestPassiveActivityLossLimitsDeductionAboveMAGIPhaseout(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income: domain.Income{
			W2s: []domain.W2Form{{Wages: decimal.NewFromInt(200000)}},
			PassiveActivities: []domain.PassiveActivity{
				{
					ID:                  "rental-1",
					ActivityType:        domain.ActivityRentalRealEstate,
					GrossIncome:         decimal.NewFromInt(10000),
					Deductions:          decimal.NewFromInt(40000),
					IsActiveParticipant: true,
				},
			},
		},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)
	require.NotNil(t, result.PAL)

	// at $200k MAGI the $25,000 special allowance is fully phased out,
	// so none of the $30,000 rental loss is allowed this year.
	assert.True(t, result.AGI.Equal(decimal.NewFromInt(200000)))
}

func TestPassiveActivityLossAllowedBelowPhaseout(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income: domain.Income{
			W2s: []domain.W2Form{{Wages: decimal.NewFromInt(60000)}},
			PassiveActivities: []domain.PassiveActivity{
				{
					ID:                  "rental-1",
					ActivityType:        domain.ActivityRentalRealEstate,
					GrossIncome:         decimal.NewFromInt(5000),
					Deductions:          decimal.NewFromInt(15000),
					IsActiveParticipant: true,
				},
			},
		},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)
	require.NotNil(t, result.PAL)

	// $60k MAGI is well under the $100k phaseout start, so the full
	// $10,000 rental loss is allowed.
	assert.True(t, result.AGI.Equal(decimal.NewFromInt(50000)))
}

func TestDebtDischargeInsolvencyExcludesIncome(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income:   domain.Income{W2s: []domain.W2Form{{Wages: decimal.NewFromInt(40000)}}},
		DebtDischargeInput: &domain.DebtDischargeInput{
			TotalCODIncome: decimal.NewFromInt(20000),
			Exclusion:      domain.DebtDischargeInsolvency,
			Insolvency: domain.InsolvencyAssetsAndLiabilities{
				TotalAssetsFMV:   decimal.NewFromInt(10000),
				TotalLiabilities: decimal.NewFromInt(50000),
			},
		},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)
	require.NotNil(t, result.DebtDischarge)

	assert.True(t, result.DebtDischarge.TaxableAmount.IsZero())
	assert.True(t, result.AGI.Equal(decimal.NewFromInt(40000)))
}

func TestMTCCreditOffsetsRegularTax(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income:   domain.Income{W2s: []domain.W2Form{{Wages: decimal.NewFromInt(150000)}}},
		Carryovers: domain.CarryoverState{
			MTCCarryforwards: []domain.MTCCarryforward{
				{OriginYear: 2022, OriginalAmount: decimal.NewFromInt(5000)},
			},
		},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)
	require.NotNil(t, result.MTC)

	assert.True(t, result.MTC.CreditAllowed.GreaterThan(decimal.Zero))
	assert.True(t, result.NonrefundableCredits.GreaterThanOrEqual(result.MTC.CreditAllowed))
}

func TestForeignTaxCreditSimplifiedMethodBelowThreshold(t *testing.T) {
	e := New(config.Load2025())
	tr := domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income:   domain.Income{W2s: []domain.W2Form{{Wages: decimal.NewFromInt(90000)}}},
		ForeignTaxCreditInput: &domain.ForeignTaxCreditInput{
			Taxes: []domain.ForeignCountryTax{
				{Country: "FR", Category: domain.FTCCategoryPassive, Amount: decimal.NewFromInt(200)},
			},
		},
	}

	result, err := e.Calculate(tr)
	require.NoError(t, err)
	require.NotNil(t, result.FTC)

	assert.True(t, result.FTC.SimplifiedMethodApplies)
	assert.True(t, result.FTC.TotalCreditAllowed.Equal(decimal.NewFromInt(200)))
}
