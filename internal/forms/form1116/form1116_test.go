package form1116

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

// TestScenario4PassiveBasketNoCarryover validates spec.md §8 scenario 4:
// gross_foreign_income $20,000, no allocated deductions, total_taxable_income
// $150,000, total_tax_before_credits $25,000, foreign_taxes_paid $3,000.
// Net foreign income = 20,000; ratio ≈ 0.1333; limitation ≈ $3,333;
// credit_allowed = $3,000; carryforward = 0; excess_limitation ≈ $333.
func TestScenario4PassiveBasketNoCarryover(t *testing.T) {
	in := Input{
		FilingStatus:          domain.Single,
		TotalTaxableIncome:    decimal.NewFromInt(150000),
		TotalTaxBeforeCredits: decimal.NewFromInt(25000),
		CurrentYear:           2025,
		Baskets: []BasketInput{
			{
				Category:            domain.FTCCategoryPassive,
				GrossForeignIncome:  decimal.NewFromInt(20000),
				TaxesPaid:           decimal.NewFromInt(3000),
			},
		},
	}

	result := Calculate(in)
	assert.False(t, result.SimplifiedMethodApplies)
	assert.Len(t, result.Baskets, 1)

	b := result.Baskets[0]
	assert.True(t, b.NetForeignIncome.Equal(decimal.NewFromInt(20000)))
	assert.True(t, b.Limitation.Sub(decimal.NewFromFloat(3333.33)).Abs().LessThan(decimal.NewFromFloat(1)),
		"expected limitation ~3333.33, got %s", b.Limitation)
	assert.True(t, b.CreditAllowed.Equal(decimal.NewFromInt(3000)))
	assert.True(t, b.NewCarryforward.IsZero())
}

func TestSimplifiedMethodUnderThresholdSingle(t *testing.T) {
	in := Input{
		FilingStatus: domain.Single,
		Baskets: []BasketInput{
			{Category: domain.FTCCategoryPassive, TaxesPaid: decimal.NewFromInt(250)},
		},
	}
	result := Calculate(in)
	assert.True(t, result.SimplifiedMethodApplies)
	assert.True(t, result.TotalCreditAllowed.Equal(decimal.NewFromInt(250)))
}

func TestSimplifiedMethodNotEligibleAboveThresholdMFJ(t *testing.T) {
	in := Input{
		FilingStatus:          domain.MarriedFilingJointly,
		TotalTaxableIncome:    decimal.NewFromInt(200000),
		TotalTaxBeforeCredits: decimal.NewFromInt(30000),
		Baskets: []BasketInput{
			{Category: domain.FTCCategoryPassive, GrossForeignIncome: decimal.NewFromInt(10000), TaxesPaid: decimal.NewFromInt(601)},
		},
	}
	result := Calculate(in)
	assert.False(t, result.SimplifiedMethodApplies)
}

func TestExcessTaxesBecomeCarryforward(t *testing.T) {
	in := Input{
		FilingStatus:          domain.Single,
		TotalTaxableIncome:    decimal.NewFromInt(100000),
		TotalTaxBeforeCredits: decimal.NewFromInt(10000),
		Baskets: []BasketInput{
			{Category: domain.FTCCategoryGeneral, GrossForeignIncome: decimal.NewFromInt(10000), TaxesPaid: decimal.NewFromInt(5000)},
		},
	}
	result := Calculate(in)
	b := result.Baskets[0]
	// limitation = 10000 * (10000/100000) = 1000; credit = min(5000,1000)=1000; carryforward = 4000.
	assert.True(t, b.Limitation.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.CreditAllowed.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.NewCarryforward.Equal(decimal.NewFromInt(4000)))
}

func TestFIFOCarryoverConsumptionOrderedByOriginYear(t *testing.T) {
	in := Input{
		FilingStatus:          domain.Single,
		TotalTaxableIncome:    decimal.NewFromInt(50000),
		TotalTaxBeforeCredits: decimal.NewFromInt(20000),
		CurrentYear:           2025,
		Baskets: []BasketInput{
			{
				Category:           domain.FTCCategoryGeneral,
				GrossForeignIncome: decimal.NewFromInt(25000), // ratio = 0.5, limitation = 10000
				TaxesPaid:          decimal.NewFromInt(2000),  // excess limitation = 8000
				Carryovers: []domain.FTCCarryover{
					{Category: domain.FTCCategoryGeneral, OriginYear: 2018, OriginalAmount: decimal.NewFromInt(1000)},
					{Category: domain.FTCCategoryGeneral, OriginYear: 2022, OriginalAmount: decimal.NewFromInt(5000)},
					{Category: domain.FTCCategoryGeneral, OriginYear: 2023, OriginalAmount: decimal.NewFromInt(5000)},
				},
			},
		},
	}

	result := Calculate(in)
	b := result.Baskets[0]
	// 2018 carryover is expired (2025 > 2018+10 ? no, 2028; not expired). Check expiry math: 2025 > 2018+10=2028 false, so not expired.
	assert.True(t, b.CarryoverUsed.Equal(decimal.NewFromInt(8000)), "expected 1000+5000+2000 consumed FIFO, got %s", b.CarryoverUsed)
	assert.True(t, b.CreditAllowed.Equal(decimal.NewFromInt(2000).Add(decimal.NewFromInt(8000))))
}

func TestAMTFTCCannotReduceTMTBelowZero(t *testing.T) {
	in := Input{
		FilingStatus: domain.Single,
		UseAMT:       true,
		AMTI:         decimal.NewFromInt(100000),
		TMT:          decimal.NewFromInt(1000),
		Baskets: []BasketInput{
			{Category: domain.FTCCategoryGeneral, GrossForeignIncome: decimal.NewFromInt(100000), TaxesPaid: decimal.NewFromInt(5000)},
		},
	}
	result := Calculate(in)
	assert.True(t, result.TotalCreditAllowed.LessThanOrEqual(decimal.NewFromInt(1000)))
}
