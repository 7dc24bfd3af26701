package form5329

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestEarlyDistributionPenaltyNetOfException(t *testing.T) {
	in := Input{ExcessContributionInput: domain.ExcessContributionInput{
		EarlyDistributions: []domain.EarlyDistribution{
			{Source: "401k", TaxableAmount: decimal.NewFromInt(10000), ExceptionAmount: decimal.NewFromInt(4000)},
		},
	}}
	result := Calculate(in)
	assert.True(t, result.EarlyDistributions[0].Subject.Equal(decimal.NewFromInt(6000)))
	assert.True(t, result.TotalEarlyDistributionTax.Equal(decimal.NewFromInt(600)))
}

func TestExcessContributionExciseTax(t *testing.T) {
	in := Input{ExcessContributionInput: domain.ExcessContributionInput{
		ExcessContributions: []domain.ExcessContribution{
			{
				Account:                  domain.ExcessAccountTraditionalIRA,
				PriorYearExcess:          decimal.NewFromInt(1000),
				CurrentYearContributions: decimal.NewFromInt(8000),
				ContributionLimit:        decimal.NewFromInt(7000),
				WithdrawnByDueDate:       decimal.NewFromInt(500),
			},
		},
	}}
	result := Calculate(in)
	// overLimit = 1000; excess = 1000(prior)+1000(over)-500(withdrawn) = 1500.
	assert.True(t, result.ExcessContributions[0].Excess.Equal(decimal.NewFromInt(1500)))
	assert.True(t, result.TotalExcessContributionTax.Equal(decimal.NewFromInt(90)))
}

func TestRMDShortfallDefaultRate(t *testing.T) {
	in := Input{ExcessContributionInput: domain.ExcessContributionInput{
		RMDShortfalls: []domain.RMDShortfall{
			{Account: "ira-1", RequiredAmount: decimal.NewFromInt(10000), DistributedAmount: decimal.NewFromInt(6000)},
		},
	}}
	result := Calculate(in)
	assert.True(t, result.RMDShortfalls[0].Tax.Equal(decimal.NewFromInt(1000)))
}

func TestRMDShortfallCorrectedWithinWindow(t *testing.T) {
	in := Input{ExcessContributionInput: domain.ExcessContributionInput{
		RMDShortfalls: []domain.RMDShortfall{
			{Account: "ira-1", RequiredAmount: decimal.NewFromInt(10000), DistributedAmount: decimal.NewFromInt(6000), CorrectedWithinWindow: true},
		},
	}}
	result := Calculate(in)
	assert.True(t, result.RMDShortfalls[0].Tax.Equal(decimal.NewFromInt(400)))
}

func TestRMDShortfallWaivedIsZero(t *testing.T) {
	in := Input{ExcessContributionInput: domain.ExcessContributionInput{
		RMDShortfalls: []domain.RMDShortfall{
			{Account: "ira-1", RequiredAmount: decimal.NewFromInt(10000), DistributedAmount: decimal.NewFromInt(6000), ReasonableCauseWaiver: true},
		},
	}}
	result := Calculate(in)
	assert.True(t, result.RMDShortfalls[0].Tax.IsZero())
}

func TestRothContributionLimitFullBelowPhaseoutStart(t *testing.T) {
	limit := RothContributionLimit(decimal.NewFromInt(7000), decimal.NewFromInt(100000), decimal.NewFromInt(150000), decimal.NewFromInt(165000))
	assert.True(t, limit.Equal(decimal.NewFromInt(7000)))
}

func TestRothContributionLimitZeroAtOrAbovePhaseoutEnd(t *testing.T) {
	limit := RothContributionLimit(decimal.NewFromInt(7000), decimal.NewFromInt(165000), decimal.NewFromInt(150000), decimal.NewFromInt(165000))
	assert.True(t, limit.IsZero())
}

func TestRothContributionLimitFloorsAt200WhenPositive(t *testing.T) {
	// near the very top of the phaseout range, the linear reduction
	// leaves a small positive amount that must floor at $200.
	limit := RothContributionLimit(decimal.NewFromInt(7000), decimal.NewFromInt(164900), decimal.NewFromInt(150000), decimal.NewFromInt(165000))
	assert.True(t, limit.GreaterThanOrEqual(decimal.NewFromInt(200)))
}

func TestRothContributionLimitRoundsToNearestTen(t *testing.T) {
	limit := RothContributionLimit(decimal.NewFromInt(7000), decimal.NewFromInt(157500), decimal.NewFromInt(150000), decimal.NewFromInt(165000))
	rem := limit.Mod(decimal.NewFromInt(10))
	assert.True(t, rem.IsZero(), "expected a multiple of 10, got %s", limit)
}
