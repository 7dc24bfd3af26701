// Package retry implements exponential backoff with jitter, ported from
// the source's RetryConfig/async_retry/sync_retry/RetryContext trio into a
// single Go contract: Do (decorator-style, wraps a func) and a manual
// Context (the context-manager-style adoption) share the same delay and
// retryability rules.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rgehrsitz/taxengine/internal/taxerr"
	"go.uber.org/zap"
)

// OnRetryFunc is invoked before each sleep, given the attempt number
// (1-indexed), the error that triggered the retry, and the delay about to
// be taken.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// Retry holds the configuration for one call site. Matching the source's
// RetryConfig field names keeps the port traceable.
type Retry struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Jitter            float64 // fraction of delay, 0..1

	// IsRetryable reports whether err should trigger another attempt. Nil
	// means "retry everything" (the source's default retryable_exceptions
	// = (Exception,)).
	IsRetryable func(err error) bool
	// IsNonRetryable, when non-nil and true, takes precedence over
	// IsRetryable — mirrors the source's non_retryable_exceptions check
	// running first.
	IsNonRetryable func(err error) bool

	OnRetry OnRetryFunc
	Logger  *zap.Logger
}

// Default returns a Retry with the source's documented defaults.
func Default() Retry {
	return Retry{
		MaxAttempts:       3,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
	}
}

func (r Retry) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// Delay computes the backoff for a given attempt (1-indexed), including
// jitter, matching RetryConfig.calculate_delay exactly: exponential
// backoff, capped at MaxDelay, then jittered by ±U(0,1)*Jitter*delay and
// floored at 0.
func (r Retry) Delay(attempt int) time.Duration {
	base := float64(r.BaseDelay)
	delay := base * math.Pow(r.BackoffMultiplier, float64(attempt-1))

	maxDelay := float64(r.MaxDelay)
	if delay > maxDelay {
		delay = maxDelay
	}

	if r.Jitter > 0 {
		jitterRange := delay * r.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
		if delay < 0 {
			delay = 0
		}
	}

	return time.Duration(delay)
}

func (r Retry) shouldRetry(err error) bool {
	if r.IsNonRetryable != nil && r.IsNonRetryable(err) {
		return false
	}
	if r.IsRetryable == nil {
		return true
	}
	return r.IsRetryable(err)
}

// Do runs fn, retrying on retryable errors up to MaxAttempts, sleeping
// Delay(attempt) between attempts. The sleep honors ctx cancellation. A
// non-retryable error is returned immediately; exhaustion returns a
// *taxerr.RetryExhaustedError wrapping the last error.
func (r Retry) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return &taxerr.Error{Kind: taxerr.KindCancelled, Message: "retry cancelled", Cause: err}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.shouldRetry(err) {
			return err
		}

		if attempt >= maxAttempts {
			r.logger().Warn("retry exhausted", zap.Int("attempts", attempt), zap.Error(err))
			return &taxerr.RetryExhaustedError{Attempts: attempt, Last: err}
		}

		delay := r.Delay(attempt)
		r.logger().Info("retrying", zap.Int("attempt", attempt), zap.Int("max_attempts", maxAttempts), zap.Duration("delay", delay), zap.Error(err))

		if r.OnRetry != nil {
			r.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &taxerr.Error{Kind: taxerr.KindCancelled, Message: "retry cancelled during backoff sleep", Cause: ctx.Err()}
		case <-timer.C:
		}
	}

	return &taxerr.RetryExhaustedError{Attempts: maxAttempts, Last: lastErr}
}
