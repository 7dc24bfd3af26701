package form8582

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestMaterialParticipation500HoursCombined(t *testing.T) {
	a := domain.PassiveActivity{
		ActivityType:  domain.ActivityOtherPassive,
		TaxpayerHours: decimal.NewFromInt(300),
		SpouseHours:   decimal.NewFromInt(250),
	}
	ok, witness := MaterialParticipation(a)
	assert.True(t, ok)
	assert.Equal(t, Test500HoursCombined, witness)
}

func TestMaterialParticipationWorkingInterestNeverPassive(t *testing.T) {
	a := domain.PassiveActivity{ActivityType: domain.ActivityWorkingInterestOG}
	ok, _ := MaterialParticipation(a)
	assert.True(t, ok)
}

func TestMaterialParticipationRealEstateProfessional(t *testing.T) {
	a := domain.PassiveActivity{
		ActivityType:      domain.ActivityRentalRealEstate,
		RealPropertyHours: decimal.NewFromInt(800),
		TotalWorkHours:    decimal.NewFromInt(1000),
	}
	ok, witness := MaterialParticipation(a)
	assert.True(t, ok)
	assert.Equal(t, TestRealEstateProfessional, witness)
}

func TestMaterialParticipationRealEstateProfessionalFailsUnderHalf(t *testing.T) {
	a := domain.PassiveActivity{
		ActivityType:      domain.ActivityRentalRealEstate,
		RealPropertyHours: decimal.NewFromInt(800),
		TotalWorkHours:    decimal.NewFromInt(2000),
	}
	ok, _ := MaterialParticipation(a)
	assert.False(t, ok)
}

// TestScenario3RentalRealEstateSpecialAllowancePhaseout validates spec.md
// §8 scenario 3: MAGI $120,000, eligible rental loss $25,000, active
// participant, not RE professional. Phaseout reduction = 10,000; available
// allowance = 15,000; allowance_used = 15,000; suspended = 10,000.
func TestScenario3RentalRealEstateSpecialAllowancePhaseout(t *testing.T) {
	in := Input{
		FilingStatus: domain.Single,
		MAGI:         decimal.NewFromInt(120000),
		Activities: []domain.PassiveActivity{
			{
				ID:                  "rental-1",
				ActivityType:        domain.ActivityRentalRealEstate,
				GrossIncome:         decimal.Zero,
				Deductions:          decimal.NewFromInt(25000),
				IsActiveParticipant: true,
				TaxpayerHours:       decimal.NewFromInt(10),
			},
		},
	}

	result := Calculate(in)

	assert.True(t, result.SpecialAllowanceAvailable.Equal(decimal.NewFromInt(15000)),
		"expected 15000 available, got %s", result.SpecialAllowanceAvailable)
	assert.True(t, result.SpecialAllowanceUsed.Equal(decimal.NewFromInt(15000)))
	assert.True(t, result.TotalAllowedLoss.Equal(decimal.NewFromInt(15000)))
	assert.True(t, result.TotalSuspendedLoss.Equal(decimal.NewFromInt(10000)))
}

func TestSpecialAllowanceZeroForMFSLivingTogether(t *testing.T) {
	in := Input{
		FilingStatus: domain.MarriedFilingSeparately,
		MAGI:         decimal.NewFromInt(50000),
		Activities: []domain.PassiveActivity{
			{
				ID:                  "rental-1",
				ActivityType:        domain.ActivityRentalRealEstate,
				Deductions:          decimal.NewFromInt(5000),
				IsActiveParticipant: true,
			},
		},
	}
	result := Calculate(in)
	assert.True(t, result.SpecialAllowanceAvailable.IsZero())
	assert.True(t, result.TotalSuspendedLoss.Equal(decimal.NewFromInt(5000)))
}

func TestDispositionReleasesSuspendedLossInFull(t *testing.T) {
	in := Input{
		FilingStatus: domain.Single,
		MAGI:         decimal.NewFromInt(300000), // well above phaseout ceiling, no special allowance
		Activities: []domain.PassiveActivity{
			{
				ID:                     "rental-1",
				ActivityType:           domain.ActivityOtherPassive,
				Deductions:             decimal.NewFromInt(3000),
				PriorYearUnallowedLoss: decimal.NewFromInt(7000),
				Disposed:               true,
			},
		},
	}
	result := Calculate(in)
	assert.True(t, result.TotalAllowedLoss.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.TotalSuspendedLoss.IsZero())
}

func TestPTPLossSuspendedNotNettedAgainstOtherPassiveIncome(t *testing.T) {
	in := Input{
		FilingStatus: domain.Single,
		Activities: []domain.PassiveActivity{
			{ID: "ptp-1", ActivityType: domain.ActivityPTP, Deductions: decimal.NewFromInt(4000)},
			{ID: "other-1", ActivityType: domain.ActivityOtherPassive, GrossIncome: decimal.NewFromInt(4000)},
		},
	}
	result := Calculate(in)
	assert.True(t, result.OtherPassiveBasketNet.Equal(decimal.NewFromInt(4000)))
	assert.True(t, result.TotalSuspendedLoss.Equal(decimal.NewFromInt(4000)))
	assert.True(t, result.TotalAllowedLoss.IsZero())
}
