// Package retry provides a small retry policy: a maximum attempt count, a
// backoff schedule and a predicate deciding which errors are worth retrying.
// Callers own one Policy value and pass work to Do, instead of sprinkling
// ad hoc sleep-and-retry loops around call sites.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. The zero value runs the
// operation exactly once.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first. Values
	// below 1 are treated as 1.
	MaxAttempts int

	// Backoff holds the delay before each retry: Backoff[0] before the second
	// attempt, Backoff[1] before the third, and so on. When attempts outrun
	// the schedule the last entry repeats. An empty schedule retries
	// immediately.
	Backoff []time.Duration

	// Retryable reports whether an error should be retried. A nil predicate
	// retries every error.
	Retryable func(error) bool

	// sleep is replaced in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// Do runs fn until it succeeds, returns a non-retryable error, the attempt
// budget is exhausted, or the context is cancelled. The last error from fn is
// returned; context errors take precedence once the context is done.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if d := p.delayFor(attempt); d > 0 {
				if serr := sleep(ctx, d); serr != nil {
					return serr
				}
			}
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// delayFor returns the backoff before the given retry (attempt >= 1).
func (p Policy) delayFor(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx >= len(p.Backoff) {
		idx = len(p.Backoff) - 1
	}
	return p.Backoff[idx]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
