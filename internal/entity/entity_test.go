package entity

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestReasonableSalaryModerateIncome(t *testing.T) {
	s := ReasonableSalary(decimal.NewFromInt(100000), decimal.NewFromInt(150000), nil)
	assert.True(t, s.RecommendedSalary.GreaterThanOrEqual(decimal.NewFromInt(50000)))
	assert.True(t, s.RecommendedSalary.LessThanOrEqual(decimal.NewFromInt(70000)))
	assert.True(t, s.SalaryRangeLow.LessThan(s.RecommendedSalary))
	assert.True(t, s.SalaryRangeHigh.GreaterThan(s.RecommendedSalary))
}

func TestReasonableSalaryLowIncomeHigherRatio(t *testing.T) {
	s := ReasonableSalary(decimal.NewFromInt(50000), decimal.NewFromInt(80000), nil)
	ratio := s.RecommendedSalary.Div(decimal.NewFromInt(50000))
	assert.True(t, ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.65)))
}

func TestReasonableSalaryHighIncomeFlooredAndCapped(t *testing.T) {
	s := ReasonableSalary(decimal.NewFromInt(300000), decimal.NewFromInt(400000), nil)
	assert.True(t, s.RecommendedSalary.GreaterThanOrEqual(decimal.NewFromInt(140000)))
	assert.True(t, s.RecommendedSalary.LessThanOrEqual(decimal.NewFromInt(180000)))
	assert.True(t, s.RecommendedSalary.LessThanOrEqual(decimal.NewFromInt(300000).Mul(decimal.NewFromFloat(0.85))))
}

func TestReasonableSalaryFixedAmountUsedAsIs(t *testing.T) {
	fixed := decimal.NewFromInt(75000)
	s := ReasonableSalary(decimal.NewFromInt(100000), decimal.NewFromInt(150000), &fixed)
	assert.True(t, s.RecommendedSalary.Equal(fixed))
	assert.Contains(t, s.Methodology, "User-specified")
}

func TestZeroNetIncomeRecommendsSoleProp(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(50000),
		BusinessExpenses: decimal.NewFromInt(50000),
	}
	result := Compare(in, cfg)
	assert.Equal(t, domain.EntitySoleProprietorship, result.RecommendedEntity)
}

func TestNegativeNetIncomeRecommendsSoleProp(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(50000),
		BusinessExpenses: decimal.NewFromInt(60000),
	}
	result := Compare(in, cfg)
	assert.Equal(t, domain.EntitySoleProprietorship, result.RecommendedEntity)
}

func TestHighIncomeFavorsSCorpAndWarns(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(1000000),
		BusinessExpenses: decimal.NewFromInt(200000),
	}
	result := Compare(in, cfg)
	assert.Equal(t, domain.EntitySCorporation, result.RecommendedEntity)
	assert.NotEmpty(t, result.Warnings)

	scorp := result.Analyses[domain.EntitySCorporation]
	soleProp := result.Analyses[domain.EntitySoleProprietorship]
	assert.True(t, scorp.PayrollTaxes.LessThan(soleProp.SelfEmploymentTax))
}

func TestLowIncomeDoesNotRecommendSCorp(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(50000),
		BusinessExpenses: decimal.NewFromInt(20000),
	}
	result := Compare(in, cfg)
	assert.NotEqual(t, domain.EntitySCorporation, result.RecommendedEntity)
}

func TestComplianceCostOrdering(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(100000),
		BusinessExpenses: decimal.NewFromInt(30000),
	}
	result := Compare(in, cfg)

	soleProp := result.Analyses[domain.EntitySoleProprietorship]
	llc := result.Analyses[domain.EntitySingleMemberLLC]
	scorp := result.Analyses[domain.EntitySCorporation]

	assert.True(t, soleProp.FormationCost.IsZero())
	assert.True(t, soleProp.AnnualComplianceCost.LessThan(decimal.NewFromInt(500)))
	assert.True(t, llc.FormationCost.GreaterThan(decimal.Zero))
	assert.True(t, scorp.AnnualComplianceCost.GreaterThan(llc.AnnualComplianceCost))
	assert.True(t, scorp.PayrollServiceCost.GreaterThan(decimal.Zero))
}

func TestSCorpHasNoSelfEmploymentTaxOnDistribution(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(200000),
		BusinessExpenses: decimal.NewFromInt(50000),
	}
	result := Compare(in, cfg)
	scorp := result.Analyses[domain.EntitySCorporation]
	assert.True(t, scorp.SelfEmploymentTax.IsZero())
	assert.True(t, scorp.PayrollTaxes.GreaterThan(decimal.Zero))
	assert.True(t, scorp.K1Distribution.GreaterThan(decimal.Zero))
}

func TestBreakevenRevenueIsPositiveAndAboveExpenses(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(100000),
		BusinessExpenses: decimal.NewFromInt(30000),
	}
	result := Compare(in, cfg)
	assert.True(t, result.BreakevenRevenue.GreaterThan(decimal.NewFromInt(30000)))
}

func TestSavingsVsCurrentEntity(t *testing.T) {
	cfg := config.Load2025()
	current := domain.EntitySoleProprietorship
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(1000000),
		BusinessExpenses: decimal.NewFromInt(200000),
		CurrentEntity:    &current,
	}
	result := Compare(in, cfg)
	assert.Equal(t, domain.EntitySoleProprietorship, *result.CurrentEntity)
	if result.RecommendedEntity == domain.EntitySCorporation {
		assert.True(t, result.SavingsVsCurrent.GreaterThan(decimal.Zero))
	}
}

func TestConfidenceScoreInRange(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		GrossRevenue:     decimal.NewFromInt(150000),
		BusinessExpenses: decimal.NewFromInt(50000),
	}
	result := Compare(in, cfg)
	assert.True(t, result.ConfidenceScore.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.ConfidenceScore.LessThanOrEqual(decimal.NewFromInt(100)))
}

func TestStateConsiderationWhenProvided(t *testing.T) {
	cfg := config.Load2025()
	in := Input{
		FilingStatus:     domain.Single,
		State:            "CA",
		GrossRevenue:     decimal.NewFromInt(200000),
		BusinessExpenses: decimal.NewFromInt(50000),
	}
	result := Compare(in, cfg)
	found := false
	for _, c := range result.Considerations {
		if strings.Contains(c, "CA") {
			found = true
		}
	}
	assert.True(t, found)
}
