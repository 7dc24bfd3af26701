package pipeline

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

func wagesRequest(wages string) Request {
	return Request{
		TaxReturn: domain.TaxReturn{
			TaxYear:  2025,
			Taxpayer: domain.TaxpayerInfo{FilingStatus: domain.Single},
			Income: domain.Income{
				W2s: []domain.W2Form{{Wages: decimal.RequireFromString(wages)}},
			},
		},
		Mode: Strict,
	}
}

func TestValidReturnComputesSuccessfully(t *testing.T) {
	p := New(config.Load2025())
	result, err := p.Calculate(context.Background(), wagesRequest("80000"))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Engine)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Metrics.CacheHit)
	assert.Equal(t, domain.Single, result.Metrics.FilingStatus)
}

func TestStrictModeAbortsOnValidationError(t *testing.T) {
	p := New(config.Load2025())
	req := wagesRequest("80000")
	req.TaxReturn.Taxpayer.FilingStatus = "bogus"

	result, err := p.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Engine)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Metrics.ValidationErrors)
}

func TestLenientModeComputesDespiteWarnings(t *testing.T) {
	p := New(config.Load2025())
	req := wagesRequest("80000")
	req.Mode = Lenient
	req.TaxReturn.Deductions.UseItemized = true
	req.TaxReturn.Deductions.Itemized.StateAndLocalTax = decimal.NewFromInt(15000)

	result, err := p.Calculate(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Warnings)
}

func TestCacheHitReturnsEquivalentResult(t *testing.T) {
	p := New(config.Load2025())
	req := wagesRequest("80000")
	req.UseCache = true

	first, err := p.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Metrics.CacheHit)

	second, err := p.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Metrics.CacheHit)
	assert.True(t, second.Engine.AGI.Equal(first.Engine.AGI))
	assert.True(t, second.Engine.TotalTax.Equal(first.Engine.TotalTax))
}

func TestCancelledContextAbortsBeforeCompute(t *testing.T) {
	p := New(config.Load2025())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Calculate(ctx, wagesRequest("80000"))
	assert.Error(t, err)
}

func TestDifferentFingerprintsDoNotCollideInCache(t *testing.T) {
	p := New(config.Load2025())

	reqA := wagesRequest("80000")
	reqA.UseCache = true
	reqB := wagesRequest("90000")
	reqB.UseCache = true

	_, err := p.Calculate(context.Background(), reqA)
	require.NoError(t, err)
	resultB, err := p.Calculate(context.Background(), reqB)
	require.NoError(t, err)
	assert.False(t, resultB.Metrics.CacheHit)
}
