package external

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/resilience/breaker"
)

func TestComputeSchedulePresenceBasicWageReturn(t *testing.T) {
	tr := domain.TaxReturn{
		Income: domain.Income{W2s: []domain.W2Form{{Wages: decimal.NewFromInt(80000)}}},
	}
	p := ComputeSchedulePresence(tr)

	assert.False(t, p.Schedule1)
	assert.False(t, p.ScheduleSE)
	assert.False(t, p.ScheduleA)
	assert.False(t, p.ScheduleB)
	assert.False(t, p.ScheduleC)
	assert.False(t, p.ScheduleE)
	assert.Equal(t, CurrentSchemaVersion, p.SchemaVersion)
}

func TestComputeSchedulePresenceSelfEmployment(t *testing.T) {
	tr := domain.TaxReturn{
		Income: domain.Income{BusinessIncome: decimal.NewFromInt(50000)},
	}
	p := ComputeSchedulePresence(tr)

	assert.True(t, p.Schedule2)
	assert.True(t, p.ScheduleSE)
	assert.True(t, p.ScheduleC)
}

func TestComputeSchedulePresenceInterestAboveThreshold(t *testing.T) {
	tr := domain.TaxReturn{
		Income: domain.Income{InterestIncome: decimal.NewFromInt(2000)},
	}
	p := ComputeSchedulePresence(tr)
	assert.True(t, p.ScheduleB)
}

func TestComputeSchedulePresenceItemizing(t *testing.T) {
	tr := domain.TaxReturn{
		Deductions: domain.Deductions{UseItemized: true},
	}
	p := ComputeSchedulePresence(tr)
	assert.True(t, p.ScheduleA)
}

func TestComputeSchedulePresencePassiveActivityRequiresScheduleE(t *testing.T) {
	tr := domain.TaxReturn{
		Income: domain.Income{
			PassiveActivities: []domain.PassiveActivity{{ID: "rental-1", ActivityType: domain.ActivityRentalRealEstate}},
		},
	}
	p := ComputeSchedulePresence(tr)
	assert.True(t, p.ScheduleE)
}

type stubKnowledgeClient struct {
	calls   int
	failN   int
	content string
}

func (s *stubKnowledgeClient) Complete(_ context.Context, _, _ string) (KnowledgeResult, error) {
	s.calls++
	if s.calls <= s.failN {
		return KnowledgeResult{}, errors.New("upstream unavailable")
	}
	return KnowledgeResult{Content: s.content}, nil
}

func TestRetryingKnowledgeClientRetriesThenSucceeds(t *testing.T) {
	stub := &stubKnowledgeClient{failN: 1, content: "guidance text"}
	registry := breaker.NewRegistry(breaker.DefaultConfig(), nil)
	client := NewRetryingKnowledgeClient(stub, registry, "ai-knowledge")
	client.Retry.BaseDelay = 0
	client.Retry.MaxDelay = 0

	result, err := client.Complete(context.Background(), "what is the SALT cap", "perplexity")
	require.NoError(t, err)
	assert.Equal(t, "guidance text", result.Content)
	assert.Equal(t, 2, stub.calls)
}

func TestRetryingKnowledgeClientOpensBreakerAfterRepeatedFailures(t *testing.T) {
	stub := &stubKnowledgeClient{failN: 100}
	cfg := breaker.DefaultConfig()
	cfg.FailureThreshold = 1
	registry := breaker.NewRegistry(cfg, nil)
	client := NewRetryingKnowledgeClient(stub, registry, "ai-knowledge-trip")
	client.Retry.MaxAttempts = 1
	client.Retry.BaseDelay = 0

	_, err := client.Complete(context.Background(), "prompt", "perplexity")
	assert.Error(t, err)
	assert.Equal(t, breaker.StateOpen, client.Breaker.State())
}
