package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func TestLoad2025BracketsAscendAndTerminateOpenEnded(t *testing.T) {
	cfg := Load2025()
	for status, table := range cfg.Brackets {
		for i, b := range table {
			if i > 0 {
				assert.True(t, b.Min.Equal(*table[i-1].Max), "status %s bracket %d should start where the previous ended", status, i)
			}
		}
		assert.Nil(t, table[len(table)-1].Max, "status %s top bracket should be open-ended", status)
	}
}

func TestAMTExemptionMFSHalfOfMFJ(t *testing.T) {
	cfg := Load2025()
	mfj := cfg.AMT[domain.MarriedFilingJointly].Exemption
	mfs := cfg.AMT[domain.MarriedFilingSeparately].Exemption
	assert.True(t, mfj.Div(mfs).Equal(decimal.NewFromInt(2)))
}

func TestAMTPhaseoutStartMFSHalfOfMFJ(t *testing.T) {
	cfg := Load2025()
	mfj := cfg.AMT[domain.MarriedFilingJointly].PhaseoutStart
	mfs := cfg.AMT[domain.MarriedFilingSeparately].PhaseoutStart
	assert.True(t, mfj.Div(mfs).Equal(decimal.NewFromInt(2)))
}

func TestStandardDeductionForAppliesSeniorAddOn(t *testing.T) {
	cfg := Load2025()
	tp := domain.TaxpayerInfo{FilingStatus: domain.Single, PrimaryAge: 70}
	got := cfg.StandardDeductionFor(tp)
	want := cfg.StandardDeduction[domain.Single].Add(cfg.AdditionalStandardDeduction)
	assert.True(t, got.Equal(want))
}
