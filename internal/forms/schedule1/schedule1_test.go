package schedule1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestLine8SumsAdditionalIncome(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		Schedule1: domain.Schedule1{
			AdditionalIncome: domain.Schedule1AdditionalIncome{
				UnemploymentComp: decimal.NewFromInt(5000),
				GamblingIncome:   decimal.NewFromInt(2000),
			},
		},
		FilingStatus: domain.Single,
	}
	result := Calculate(in, cfg)
	assert.True(t, result.Line8AdditionalIncome.Equal(decimal.NewFromInt(7000)))
}

func TestSETaxDeductionFlowsIntoLine10(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		Schedule1: domain.Schedule1{
			Adjustments: domain.Schedule1Adjustments{
				EducatorExpenses: decimal.NewFromInt(300),
			},
		},
		NetSelfEmploymentIncome: decimal.NewFromInt(70000),
		FilingStatus:            domain.Single,
	}
	result := Calculate(in, cfg)

	// spec.md §8 scenario 2: SE tax deduction ~= $4,945.
	assert.True(t, result.SEResult.Deduction.Sub(decimal.NewFromInt(4945)).Abs().LessThan(decimal.NewFromInt(3)))
	assert.True(t, result.Line10Adjustments.Sub(decimal.NewFromInt(300).Add(result.SEResult.Deduction)).Abs().LessThan(decimal.NewFromFloat(0.01)))
}

func TestZeroSEIncomeYieldsNoSEDeduction(t *testing.T) {
	cfg := config.Load2025()
	in := Input{FilingStatus: domain.Single}
	result := Calculate(in, cfg)
	assert.True(t, result.SEResult.Deduction.IsZero())
	assert.True(t, result.Line10Adjustments.IsZero())
}
