// Package breaker implements the circuit breaker pattern ported from the
// source's CircuitBreaker/CircuitBreakerRegistry: CLOSED/OPEN/HALF_OPEN
// states, lazy state transition on read, and a process-wide name-indexed
// registry guarded by a mutex (the one legitimate process-wide singleton
// called out in spec §9 — kept behind the Registry type rather than a
// package-level global, so callers inject it).
package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/rgehrsitz/taxengine/internal/taxerr"
	"go.uber.org/zap"
)

// State is one of the three circuit states.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Config configures a single Breaker, field names mirroring
// CircuitBreakerConfig.
type Config struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration

	// IsFailure reports whether err counts toward FailureThreshold. Nil
	// means every non-nil error counts (the source's default
	// failure_exceptions = (Exception,)).
	IsFailure func(err error) bool

	OnOpen     func(b *Breaker)
	OnClose    func(b *Breaker)
	OnHalfOpen func(b *Breaker)
}

// DefaultConfig mirrors the source's CircuitBreakerConfig defaults.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// Breaker is one named circuit. Safe for concurrent use.
type Breaker struct {
	Name   string
	cfg    Config
	logger *zap.Logger

	mu              sync.Mutex
	state           State
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	hasFailed       bool
}

// New constructs a Breaker in the CLOSED state.
func New(name string, cfg Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{Name: name, cfg: cfg, logger: logger, state: StateClosed}
}

// State returns the current state, applying the OPEN->HALF_OPEN lazy
// transition if Timeout has elapsed since the last failure.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && b.hasFailed {
		if time.Since(b.lastFailureTime) >= b.cfg.Timeout {
			b.transitionToHalfOpenLocked()
		}
	}
	return b.state
}

func (b *Breaker) transitionToOpenLocked() {
	b.state = StateOpen
	b.lastFailureTime = time.Now()
	b.hasFailed = true
	b.logger.Warn("circuit breaker opened", zap.String("name", b.Name))
	if b.cfg.OnOpen != nil {
		b.cfg.OnOpen(b)
	}
}

func (b *Breaker) transitionToClosedLocked() {
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
	b.hasFailed = false
	b.logger.Info("circuit breaker closed", zap.String("name", b.Name))
	if b.cfg.OnClose != nil {
		b.cfg.OnClose(b)
	}
}

func (b *Breaker) transitionToHalfOpenLocked() {
	b.state = StateHalfOpen
	b.successCount = 0
	b.logger.Info("circuit breaker half-open", zap.String("name", b.Name))
	if b.cfg.OnHalfOpen != nil {
		b.cfg.OnHalfOpen(b)
	}
}

// FailureCount returns the current consecutive-failure count.
func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failureCount
}

// Allow reports whether a request may proceed, or returns
// *taxerr.CircuitOpenError carrying time_remaining when the circuit is
// OPEN.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateClosed, StateHalfOpen:
		return nil
	default: // StateOpen
		remaining := time.Duration(0)
		if b.hasFailed {
			elapsed := time.Since(b.lastFailureTime)
			if remaining = b.cfg.Timeout - elapsed; remaining < 0 {
				remaining = 0
			}
		}
		return &taxerr.CircuitOpenError{Name: b.Name, TimeRemaining: remaining}
	}
}

// RecordSuccess records a successful call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateHalfOpen:
		b.successCount++
		if b.successCount >= b.cfg.SuccessThreshold {
			b.transitionToClosedLocked()
		}
	case StateClosed:
		b.failureCount = 0
	}
}

// RecordFailure records a failed call. err is checked against
// cfg.IsFailure; a non-matching error does not count.
func (b *Breaker) RecordFailure(err error) {
	if b.cfg.IsFailure != nil && !b.cfg.IsFailure(err) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateHalfOpen:
		b.transitionToOpenLocked()
	case StateClosed:
		b.failureCount++
		if b.failureCount >= b.cfg.FailureThreshold {
			b.transitionToOpenLocked()
		}
	}
}

// Reset forces the breaker back to CLOSED.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionToClosedLocked()
}

// Do is the decorator-style adoption: Allow, call fn, record the outcome.
func (b *Breaker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn(ctx)
	if err != nil {
		b.RecordFailure(err)
		return err
	}
	b.RecordSuccess()
	return nil
}
