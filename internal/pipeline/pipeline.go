// Package pipeline implements the five-step calculation orchestration of
// spec §4.14: validate, fingerprint, cache lookup, compute via the
// federal engine, cache store. Grounded on the teacher's internal/engine
// (the now-superseded top-level calculator that composed several
// sub-calculators behind one Calculate entrypoint, wrapping each stage's
// error with fmt.Errorf("...: %w", err)) and internal/resilience's
// zap-backed optional-logger convention.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/engine"
	"github.com/rgehrsitz/taxengine/internal/fingerprint"
	"github.com/rgehrsitz/taxengine/internal/taxerr"
	"github.com/rgehrsitz/taxengine/internal/validation"
)

// Mode selects validation strictness, per spec §4.14 step 1.
type Mode string

const (
	// Strict aborts computation when any error-severity issue fires.
	Strict Mode = "strict"
	// Lenient accumulates error-severity issues as warnings in the result
	// and computes anyway, whatever the issues; the call still fails when
	// the engine itself returns an error (e.g. Form 982 rejecting a QPRI
	// exclusion with a non-positive residence basis).
	Lenient Mode = "lenient"
)

// Request is one calculation request: the return, its prior-year
// carryover snapshot, and the options that change how the pipeline
// treats the computation (mode, cache participation).
type Request struct {
	TaxReturn  domain.TaxReturn
	Carryovers domain.CarryoverState
	Mode       Mode
	UseCache   bool
}

// Metrics is the per-calculation telemetry spec §4.14 requires be
// returned alongside the result, not logged as a side channel, so
// callers can assert on it directly.
type Metrics struct {
	CacheHit           bool
	ValidationErrors   int
	ValidationWarnings int
	LatencyMillis      int64
	FilingStatus       domain.FilingStatus
}

// Result is what Pipeline.Calculate returns: the success flag, the
// engine's computed breakdown (nil on validation failure), the fired
// validation issues, and the metrics for this call. Per spec §7, callers
// never receive a thrown exception for a routine validation outcome —
// ValidationFailed issues surface here, not as a returned error.
type Result struct {
	Success  bool
	Engine   *engine.Result
	Errors   []taxerr.Issue
	Warnings []taxerr.Issue
	Metrics  Metrics
}

// Cache is the content-addressed calculation cache spec §5 describes:
// concurrent readers are always safe, and concurrent writers for the
// same key are expected to produce byte-identical values, so
// last-writer-wins is an acceptable Store semantics.
type Cache interface {
	Get(ctx context.Context, key string) (*engine.Result, bool)
	Store(ctx context.Context, key string, result *engine.Result)
}

// Pipeline wires the Validator, the fingerprint function, a Cache, and
// the FederalEngine behind one Calculate entrypoint. The Validator is
// injected rather than a package-level singleton, per spec §9's removal
// of the cyclic-singleton-validator anti-pattern.
type Pipeline struct {
	Validator validation.Validator
	Cache     Cache
	Engine    *engine.FederalEngine
	Logger    *zap.Logger
}

// New builds a Pipeline with the default RuleValidator, an in-memory
// cache, and a FederalEngine over cfg.
func New(cfg *config.YearConfig) *Pipeline {
	return &Pipeline{
		Validator: validation.New(),
		Cache:     NewInMemoryCache(),
		Engine:    engine.New(cfg),
	}
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}

// Calculate runs the five-step pipeline over req.
func (p *Pipeline) Calculate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	mode := req.Mode
	if mode == "" {
		mode = Strict
	}

	issues := p.Validator.Validate(ctx, req.TaxReturn)
	failed := &taxerr.ValidationFailed{Issues: issues}
	errs := failed.Errors()
	warnings := failed.Warnings()

	metrics := Metrics{
		ValidationErrors:   len(errs),
		ValidationWarnings: len(warnings),
		FilingStatus:       req.TaxReturn.Taxpayer.FilingStatus,
	}

	if len(errs) > 0 && mode == Strict {
		metrics.LatencyMillis = time.Since(start).Milliseconds()
		p.logger().Warn("validation failed, strict mode aborting",
			zap.Int("errors", len(errs)), zap.Int("warnings", len(warnings)))
		return &Result{Success: false, Errors: errs, Warnings: warnings, Metrics: metrics}, nil
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("pipeline: %w", ctx.Err())
	}

	key, err := fingerprint.Of(req.TaxReturn, req.Carryovers, string(mode))
	if err != nil {
		return nil, fmt.Errorf("pipeline: fingerprint: %w", err)
	}

	if req.UseCache {
		if cached, ok := p.Cache.Get(ctx, key); ok {
			metrics.CacheHit = true
			metrics.LatencyMillis = time.Since(start).Milliseconds()
			p.logger().Info("cache hit", zap.String("fingerprint", key))
			return &Result{Success: true, Engine: cached, Errors: errs, Warnings: warnings, Metrics: metrics}, nil
		}
	}

	tr := req.TaxReturn.DeepCopy()
	tr.Carryovers = req.Carryovers.DeepCopy()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("pipeline: %w", ctx.Err())
	}

	computed, err := p.Engine.Calculate(tr)
	if err != nil {
		return nil, fmt.Errorf("pipeline: compute: %w", err)
	}

	if ctx.Err() != nil {
		// A cancelled computation emits no cache entry, per spec §5.
		return nil, fmt.Errorf("pipeline: %w", ctx.Err())
	}

	if req.UseCache {
		p.Cache.Store(ctx, key, computed)
	}

	metrics.LatencyMillis = time.Since(start).Milliseconds()
	p.logger().Info("calculation complete",
		zap.String("fingerprint", key),
		zap.Int64("latency_ms", metrics.LatencyMillis),
		zap.String("filing_status", string(metrics.FilingStatus)))

	return &Result{Success: true, Engine: computed, Errors: errs, Warnings: warnings, Metrics: metrics}, nil
}
