package fingerprint

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func baseReturn() domain.TaxReturn {
	return domain.TaxReturn{
		TaxYear:  2025,
		Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
		Income: domain.Income{
			W2s: []domain.W2Form{{Wages: decimal.NewFromInt(80000)}},
		},
	}
}

func TestSameInputsSameFingerprint(t *testing.T) {
	a, err := Of(baseReturn(), domain.CarryoverState{}, "strict")
	assert.NoError(t, err)
	b, err := Of(baseReturn(), domain.CarryoverState{}, "strict")
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDifferentIncomeDifferentFingerprint(t *testing.T) {
	a, _ := Of(baseReturn(), domain.CarryoverState{}, "strict")

	other := baseReturn()
	other.Income.W2s[0].Wages = decimal.NewFromInt(90000)
	b, _ := Of(other, domain.CarryoverState{}, "strict")

	assert.NotEqual(t, a, b)
}

func TestDifferentValidationModeDifferentFingerprint(t *testing.T) {
	a, _ := Of(baseReturn(), domain.CarryoverState{}, "strict")
	b, _ := Of(baseReturn(), domain.CarryoverState{}, "lenient")
	assert.NotEqual(t, a, b)
}

func TestCarryoverStateParticipatesInFingerprint(t *testing.T) {
	a, _ := Of(baseReturn(), domain.CarryoverState{}, "strict")
	b, _ := Of(baseReturn(), domain.CarryoverState{NOLCarryover: decimal.NewFromInt(5000)}, "strict")
	assert.NotEqual(t, a, b)
}
