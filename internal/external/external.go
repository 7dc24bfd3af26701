// Package external defines the contract surface spec §6 draws around the
// core: a renderer boundary, an AI/knowledge boundary, and a document-
// ingestion boundary. Per spec.md's stated Non-goals (rendering, AI
// narrative generation, OCR ingestion are out of scope), only the
// interfaces and the retry/circuit-breaker wiring around them are
// implemented here — no concrete renderer, model client, or OCR pipeline
// ships in this module. The schedule-presence rule set, by contrast, is
// core compute logic spec §6 states explicitly, so it is implemented in
// full.
package external

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/resilience/breaker"
	"github.com/rgehrsitz/taxengine/internal/resilience/retry"
	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

// ReportContent is the wire-stable projection a Renderer consumes —
// spec §6 is explicit that renderers must depend on a documented
// projection, not on internal/domain's in-memory field names, so this
// type (not domain.TaxReturn) is the renderer's input shape.
type ReportContent map[string]interface{}

// Renderer consumes a ReportVersion's content plus an optional tenant
// brand theme and produces rendered bytes (PDF) or text (HTML/XML). It
// MUST NOT mutate content or produce side effects visible to the core.
type Renderer interface {
	Render(ctx context.Context, content ReportContent, brandTheme string) ([]byte, error)
}

// KnowledgeResult is the AI/knowledge contract's single response shape.
type KnowledgeResult struct {
	Content string
}

// KnowledgeClient is the single `complete(prompt, provider)` call spec §6
// names. The core only ever invokes it through RetryingKnowledgeClient,
// never directly, so a bare implementation is never circuit-broken by
// accident.
type KnowledgeClient interface {
	Complete(ctx context.Context, prompt, provider string) (KnowledgeResult, error)
}

// RetryingKnowledgeClient wraps a KnowledgeClient with the retry and
// circuit-breaker primitives spec §6 mandates ("the core only invokes
// this through retry + circuit breaker wrappers"). Grounded on
// internal/resilience/retry.Retry.Do and breaker.Breaker.Do's identical
// decorator-style contract.
type RetryingKnowledgeClient struct {
	Client  KnowledgeClient
	Retry   retry.Retry
	Breaker *breaker.Breaker
}

// NewRetryingKnowledgeClient wraps client with the source's documented
// retry defaults and a breaker registered under name.
func NewRetryingKnowledgeClient(client KnowledgeClient, registry *breaker.Registry, name string) *RetryingKnowledgeClient {
	r := retry.Default()
	r.IsNonRetryable = func(err error) bool {
		var open *taxerr.CircuitOpenError
		return errors.As(err, &open)
	}
	return &RetryingKnowledgeClient{
		Client:  client,
		Retry:   r,
		Breaker: registry.Get(name),
	}
}

// Complete calls through the circuit breaker, with the retry layer
// wrapping the breaker-guarded attempt — a CircuitOpen rejection is
// reported as a single non-retryable failure rather than retried, since
// spec §4.16 treats breaker rejection as a decision for the caller, not
// a fresh retry target.
func (c *RetryingKnowledgeClient) Complete(ctx context.Context, prompt, provider string) (KnowledgeResult, error) {
	var result KnowledgeResult
	err := c.Retry.Do(ctx, func(ctx context.Context) error {
		return c.Breaker.Do(ctx, func(ctx context.Context) error {
			r, err := c.Client.Complete(ctx, prompt, provider)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	if err != nil {
		return KnowledgeResult{}, fmt.Errorf("external: knowledge client: %w", err)
	}
	return result, nil
}

// ExtractedFields is the document-ingestion contract's output: the raw
// key/value pairs an OCR/parsing pipeline recovered from a source
// document (a W-2, 1099, etc.), left unstructured since the parsing
// logic itself is out of scope here.
type ExtractedFields map[string]string

// DocumentIngestion consumes raw document bytes and returns whatever
// fields it could extract. The core treats extraction failures as
// ordinary errors, never a panic.
type DocumentIngestion interface {
	Ingest(ctx context.Context, filename string, data []byte) (ExtractedFields, error)
}

// SchedulePresence reports which IRS schedules a finalized return
// requires, per spec §6's presence-rule list. The core exposes only this
// structured payload plus a schema version; it never produces e-file XML
// bytes itself (an explicit Non-goal).
type SchedulePresence struct {
	SchemaVersion string
	Schedule1     bool
	Schedule2     bool
	ScheduleSE    bool
	ScheduleA     bool
	ScheduleB     bool
	ScheduleC     bool
	ScheduleE     bool
}

// CurrentSchemaVersion is the e-file schema version this presence rule
// set targets.
const CurrentSchemaVersion = "ty2025-v1"

// ComputeSchedulePresence derives SchedulePresence from a TaxReturn,
// grounded directly on spec §6's rule list: Schedule 1 when Part I or
// Part II lines are non-zero; Schedule 2 when SE income > 0; Schedule SE
// when SE income > 0; Schedule A when itemizing; Schedule B when
// interest or dividends exceed $1,500; Schedule C/E by income-type
// presence.
func ComputeSchedulePresence(tr domain.TaxReturn) SchedulePresence {
	interestAndDividends := tr.Income.InterestIncome.Add(tr.Income.OrdinaryDividends)
	scheduleBThreshold := decimal.NewFromInt(1500)

	return SchedulePresence{
		SchemaVersion: CurrentSchemaVersion,
		Schedule1:     tr.Schedule1.Required(),
		Schedule2:     tr.Income.BusinessIncome.GreaterThan(decimal.Zero),
		ScheduleSE:    tr.Income.BusinessIncome.GreaterThan(decimal.Zero),
		ScheduleA:     tr.Deductions.UseItemized,
		ScheduleB:     interestAndDividends.GreaterThan(scheduleBThreshold),
		ScheduleC:     tr.Income.BusinessIncome.GreaterThan(decimal.Zero),
		ScheduleE:     len(tr.Income.PassiveActivities) > 0 || len(tr.Income.K1s) > 0,
	}
}
