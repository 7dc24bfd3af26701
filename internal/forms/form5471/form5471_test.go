package form5471

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestInclusionRequiresBothCFCAndTenPercentShareholder(t *testing.T) {
	result := Calculate([]domain.ControlledForeignCorpInput{
		{Name: "not-cfc", IsCFC: false, OwnershipPercent: decimal.NewFromFloat(0.50)},
		{Name: "below-threshold", IsCFC: true, OwnershipPercent: decimal.NewFromFloat(0.05)},
	})
	assert.True(t, result.TotalSubpartFInclusion.IsZero())
	assert.True(t, result.TotalGILTIInclusion.IsZero())
	assert.False(t, result.Corporations[0].InclusionApplies)
	assert.False(t, result.Corporations[1].InclusionApplies)
}

func TestSubpartFInclusionNetOfExclusions(t *testing.T) {
	result := Calculate([]domain.ControlledForeignCorpInput{
		{
			Name:                 "cfc-1",
			IsCFC:                true,
			OwnershipPercent:     decimal.NewFromFloat(0.40),
			ProRataShare:         decimal.NewFromFloat(0.40),
			GrossSubpartFIncome:  decimal.NewFromInt(100000),
			HighTaxExclusion:     decimal.NewFromInt(10000),
			DeMinimisExclusion:   decimal.NewFromInt(5000),
			SameCountryExclusion: decimal.NewFromInt(5000),
		},
	})
	cr := result.Corporations[0]
	assert.True(t, cr.NetSubpartFIncome.Equal(decimal.NewFromInt(80000)))
	assert.True(t, cr.SubpartFInclusion.Equal(decimal.NewFromInt(32000)))
}

func TestGILTIInclusionNetOfQBAIReturn(t *testing.T) {
	result := Calculate([]domain.ControlledForeignCorpInput{
		{
			Name:                             "cfc-1",
			IsCFC:                            true,
			OwnershipPercent:                 decimal.NewFromFloat(1.0),
			ProRataShare:                     decimal.NewFromFloat(1.0),
			NetTestedIncome:                  decimal.NewFromInt(50000),
			QualifiedBusinessAssetInvestment: decimal.NewFromInt(200000),
		},
	})
	cr := result.Corporations[0]
	// QBAI return = 200000 * 10% = 20000; net tested = 50000-20000 = 30000.
	assert.True(t, cr.DeemedTangibleIncomeReturn.Equal(decimal.NewFromInt(20000)))
	assert.True(t, cr.NetCFCTestedIncome.Equal(decimal.NewFromInt(30000)))
	assert.True(t, cr.GILTIInclusion.Equal(decimal.NewFromInt(30000)))
}

func TestGILTINetTestedIncomeFlooredAtZero(t *testing.T) {
	result := Calculate([]domain.ControlledForeignCorpInput{
		{
			Name:                             "cfc-1",
			IsCFC:                            true,
			OwnershipPercent:                 decimal.NewFromFloat(1.0),
			ProRataShare:                     decimal.NewFromFloat(1.0),
			NetTestedIncome:                  decimal.NewFromInt(5000),
			QualifiedBusinessAssetInvestment: decimal.NewFromInt(200000),
		},
	})
	assert.True(t, result.Corporations[0].NetCFCTestedIncome.IsZero())
}
