package form8801

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestCurrentYearMTCDeferralPortionOnly(t *testing.T) {
	in := Input{
		PriorYearAMT: &domain.PriorYearAMTDetail{
			DeferralAdjustments:  decimal.NewFromInt(6000),
			ExclusionAdjustments: decimal.NewFromInt(4000),
			TotalAMT:             decimal.NewFromInt(10000),
		},
		RegularTax: decimal.NewFromInt(50000),
		TMT:        decimal.NewFromInt(20000),
	}
	result := Calculate(in)
	// deferral portion = 10000 * 6000/10000 = 6000.
	assert.True(t, result.CurrentYearMTCGenerated.Equal(decimal.NewFromInt(6000)))
}

func TestCreditLimitIsRegularTaxMinusTMT(t *testing.T) {
	in := Input{
		RegularTax: decimal.NewFromInt(50000),
		TMT:        decimal.NewFromInt(20000),
		Carryforwards: []domain.MTCCarryforward{
			{OriginYear: 2020, OriginalAmount: decimal.NewFromInt(100000)},
		},
	}
	result := Calculate(in)
	assert.True(t, result.CreditLimit.Equal(decimal.NewFromInt(30000)))
	assert.True(t, result.CreditAllowed.Equal(decimal.NewFromInt(30000)))
	assert.True(t, result.NewCarryforward.Equal(decimal.NewFromInt(70000)))
}

func TestCreditLimitFlooredAtZeroWhenTMTExceedsRegularTax(t *testing.T) {
	in := Input{
		RegularTax: decimal.NewFromInt(10000),
		TMT:        decimal.NewFromInt(25000),
		Carryforwards: []domain.MTCCarryforward{
			{OriginYear: 2020, OriginalAmount: decimal.NewFromInt(5000)},
		},
	}
	result := Calculate(in)
	assert.True(t, result.CreditLimit.IsZero())
	assert.True(t, result.CreditAllowed.IsZero())
	assert.True(t, result.NewCarryforward.Equal(decimal.NewFromInt(5000)))
}

func TestCarryforwardConsumedFIFOByOriginYear(t *testing.T) {
	in := Input{
		RegularTax: decimal.NewFromInt(50000),
		TMT:        decimal.NewFromInt(47000),
		Carryforwards: []domain.MTCCarryforward{
			{OriginYear: 2022, OriginalAmount: decimal.NewFromInt(2000)},
			{OriginYear: 2019, OriginalAmount: decimal.NewFromInt(1000)},
		},
	}
	result := Calculate(in)
	// credit limit = 3000; available = 3000; fully consumed, 2019 first.
	// UpdatedCarryforwards preserves input order (2022, then 2019); only
	// the consumption pass itself is origin-year ordered.
	assert.True(t, result.CreditAllowed.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 2022, result.UpdatedCarryforwards[0].OriginYear)
	assert.True(t, result.UpdatedCarryforwards[0].UsedAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 2019, result.UpdatedCarryforwards[1].OriginYear)
	assert.True(t, result.UpdatedCarryforwards[1].UsedAmount.Equal(decimal.NewFromInt(1000)))
}

func TestDeferralPortionFallsBackToTotalWhenBreakdownUnknown(t *testing.T) {
	in := Input{
		PriorYearAMT: &domain.PriorYearAMTDetail{TotalAMT: decimal.NewFromInt(5000)},
		RegularTax:   decimal.NewFromInt(50000),
		TMT:          decimal.NewFromInt(20000),
	}
	result := Calculate(in)
	assert.True(t, result.CurrentYearMTCGenerated.Equal(decimal.NewFromInt(5000)))
}
