package retry

import (
	"context"
	"time"

	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

// Context is the manual, context-manager-style adoption of Retry,
// ported from the source's RetryContext: callers loop on ShouldContinue,
// attempt the operation themselves, and call HandleError on failure.
// Equivalent in contract to Do, for call sites that need a break/continue
// loop rather than a wrapped func.
type Context struct {
	cfg       Retry
	attempt   int
	exhausted bool
	lastErr   error
}

// NewContext starts a manual retry sequence under cfg.
func NewContext(cfg Retry) *Context {
	return &Context{cfg: cfg}
}

// ShouldContinue reports whether another attempt is permitted.
func (c *Context) ShouldContinue() bool {
	max := c.cfg.MaxAttempts
	if max <= 0 {
		max = 1
	}
	return !c.exhausted && c.attempt < max
}

// HandleError records a failed attempt. It returns nil when the caller
// should sleep-and-retry (the sleep already happened inside HandleError,
// honoring ctx), or a non-nil terminal error (non-retryable, or
// exhausted) that the caller must propagate.
func (c *Context) HandleError(ctx context.Context, err error) error {
	c.lastErr = err
	c.attempt++

	if !c.cfg.shouldRetry(err) {
		c.exhausted = true
		return err
	}

	max := c.cfg.MaxAttempts
	if max <= 0 {
		max = 1
	}
	if c.attempt >= max {
		c.exhausted = true
		return &taxerr.RetryExhaustedError{Attempts: c.attempt, Last: err}
	}

	delay := c.cfg.Delay(c.attempt)
	if c.cfg.OnRetry != nil {
		c.cfg.OnRetry(c.attempt, err, delay)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		c.exhausted = true
		return &taxerr.Error{Kind: taxerr.KindCancelled, Message: "retry cancelled during backoff sleep", Cause: ctx.Err()}
	case <-timer.C:
		return nil
	}
}
