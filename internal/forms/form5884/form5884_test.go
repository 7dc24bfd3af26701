package form5884

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

// TestHoursTieredRateBoundaries validates spec.md §8's boundary table:
// hours {119, 120, 399, 400} -> rates {0%, 25%, 25%, 40%}.
func TestHoursTieredRateBoundaries(t *testing.T) {
	cases := []struct {
		hours    int64
		expected decimal.Decimal
	}{
		{119, decimal.Zero},
		{120, midTierRate},
		{399, midTierRate},
		{400, fullRate},
	}
	for _, c := range cases {
		got := hoursRate(decimal.NewFromInt(c.hours))
		assert.True(t, got.Equal(c.expected), "hours=%d: expected %s, got %s", c.hours, c.expected, got)
	}
}

func TestUncertifiedEmployeeYieldsZeroCredit(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "e1", TargetGroup: domain.WOTCStandard, Certified: false, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(10000)},
	}, cfg)
	assert.True(t, result.TotalCredit.IsZero())
}

func TestStandardWageLimitCapsCredit(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "e1", TargetGroup: domain.WOTCStandard, Certified: true, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(20000)},
	}, cfg)
	// wage limit 6000, rate 40% -> credit = 2400.
	assert.True(t, result.Employees[0].QualifiedWagesUsed.Equal(decimal.NewFromInt(6000)))
	assert.True(t, result.TotalCredit.Equal(decimal.NewFromInt(2400)))
}

func TestDisabledUnemployedVeteranHigherWageLimit(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "e1", TargetGroup: domain.WOTCDisabledUnemployedVet, Certified: true, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(30000)},
	}, cfg)
	assert.True(t, result.Employees[0].QualifiedWagesUsed.Equal(decimal.NewFromInt(24000)))
	assert.True(t, result.TotalCredit.Equal(decimal.NewFromInt(24000).Mul(fullRate)))
}

func TestLTFATwoYearStructure(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "year1", TargetGroup: domain.WOTCLongTermFamilyAssist, Certified: true, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(10000), LTFAYear: 1},
		{ID: "year2", TargetGroup: domain.WOTCLongTermFamilyAssist, Certified: true, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(10000), LTFAYear: 2},
	}, cfg)
	assert.True(t, result.Employees[0].Credit.Equal(decimal.NewFromInt(4000)))
	assert.True(t, result.Employees[1].Credit.Equal(decimal.NewFromInt(5000)))
}

func TestLTFABelowHoursThresholdStillZero(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "e1", TargetGroup: domain.WOTCLongTermFamilyAssist, Certified: true, HoursWorked: decimal.NewFromInt(100), QualifiedWages: decimal.NewFromInt(10000), LTFAYear: 1},
	}, cfg)
	assert.True(t, result.Employees[0].Credit.IsZero())
}

func TestCreditBrokenOutByTargetGroup(t *testing.T) {
	cfg := config.Load2025()
	result := Calculate([]domain.WOTCEmployee{
		{ID: "e1", TargetGroup: domain.WOTCStandard, Certified: true, HoursWorked: decimal.NewFromInt(500), QualifiedWages: decimal.NewFromInt(6000)},
		{ID: "e2", TargetGroup: domain.WOTCSummerYouth, Certified: true, HoursWorked: decimal.NewFromInt(200), QualifiedWages: decimal.NewFromInt(3000)},
	}, cfg)
	assert.Len(t, result.CreditByTargetGroup, 2)
	assert.True(t, result.CreditByTargetGroup[domain.WOTCStandard].Equal(decimal.NewFromInt(6000).Mul(fullRate)))
	assert.True(t, result.CreditByTargetGroup[domain.WOTCSummerYouth].Equal(decimal.NewFromInt(3000).Mul(midTierRate)))
}
