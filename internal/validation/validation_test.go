package validation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

func validReturn() domain.TaxReturn {
	return domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income: domain.Income{
			W2s: []domain.W2Form{{Wages: decimal.NewFromInt(80000)}},
		},
	}
}

func TestValidReturnProducesNoIssues(t *testing.T) {
	v := New()
	issues := v.Validate(context.Background(), validReturn())
	assert.Empty(t, issues)
}

func TestUnrecognizedFilingStatusIsAnError(t *testing.T) {
	v := New()
	tr := validReturn()
	tr.Taxpayer.FilingStatus = "not_a_status"

	issues := v.Validate(context.Background(), tr)
	require.NotEmpty(t, issues)

	failed := &taxerr.ValidationFailed{Issues: issues}
	require.Len(t, failed.Errors(), 1)
	assert.Equal(t, "filing_status.required", failed.Errors()[0].RuleID)
}

func TestNegativeWagesIsAnError(t *testing.T) {
	v := New()
	tr := validReturn()
	tr.Income.W2s[0].Wages = decimal.NewFromInt(-100)

	issues := v.Validate(context.Background(), tr)
	failed := &taxerr.ValidationFailed{Issues: issues}
	require.Len(t, failed.Errors(), 1)
	assert.Equal(t, "income.w2_wages_negative", failed.Errors()[0].RuleID)
}

func TestSALTAboveCapIsAWarningNotAnError(t *testing.T) {
	v := New()
	tr := validReturn()
	tr.Deductions.UseItemized = true
	tr.Deductions.Itemized.StateAndLocalTax = decimal.NewFromInt(15000)

	issues := v.Validate(context.Background(), tr)
	failed := &taxerr.ValidationFailed{Issues: issues}
	assert.Empty(t, failed.Errors())
	require.Len(t, failed.Warnings(), 1)
	assert.Equal(t, "deductions.salt_above_cap", failed.Warnings()[0].RuleID)
}

func TestPassiveActivityHoursExceedingTotalIsAnError(t *testing.T) {
	v := New()
	tr := validReturn()
	tr.Income.PassiveActivities = []domain.PassiveActivity{
		{
			ID:                 "rental-1",
			ActivityType:       domain.ActivityRentalRealEstate,
			TaxpayerHours:      decimal.NewFromInt(500),
			TotalActivityHours: decimal.NewFromInt(100),
		},
	}

	issues := v.Validate(context.Background(), tr)
	failed := &taxerr.ValidationFailed{Issues: issues}
	require.Len(t, failed.Errors(), 1)
	assert.Equal(t, "passive_activity.hours_exceed_total", failed.Errors()[0].RuleID)
}

func TestAllRulesRunIndependently(t *testing.T) {
	calls := 0
	v := NewWithRules(
		func(domain.TaxReturn) []taxerr.Issue { calls++; return nil },
		func(domain.TaxReturn) []taxerr.Issue { calls++; return []taxerr.Issue{errIssue("x", "y", "z")} },
		func(domain.TaxReturn) []taxerr.Issue { calls++; return nil },
	)
	issues := v.Validate(context.Background(), validReturn())
	assert.Equal(t, 3, calls)
	require.Len(t, issues, 1)
}
