// Package session owns the throttled session-refresh logic around the
// identity provider. The throttle state lives in a Refresher with an
// injected clock so it can be tested and so concurrent requests in a server
// process do not interfere through a global.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/cinetix/backend/internal/retry"
)

// DefaultMinInterval is the minimum spacing between two refresh calls
// against the identity provider.
const DefaultMinInterval = 5 * time.Second

// RefreshFunc performs one refresh call against the identity provider.
type RefreshFunc func(ctx context.Context) error

// Refresher serializes and throttles session refreshes. A caller arriving
// before MinInterval has elapsed since the previous refresh waits out the
// remainder first. The actual call runs under the configured retry policy so
// rate-limit responses from the provider are retried with backoff.
type Refresher struct {
	mu          sync.Mutex
	refresh     RefreshFunc
	minInterval time.Duration
	policy      retry.Policy

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	last time.Time
}

// NewRefresher builds a Refresher around the given refresh call. A
// non-positive minInterval falls back to DefaultMinInterval.
func NewRefresher(refresh RefreshFunc, minInterval time.Duration, policy retry.Policy) *Refresher {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Refresher{
		refresh:     refresh,
		minInterval: minInterval,
		policy:      policy,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Refresh performs a throttled refresh. Callers are serialized; each waits
// until the minimum interval since the last refresh has passed, then runs the
// refresh under the retry policy. The last-refresh timestamp advances even
// when the refresh fails, so a failing provider is still called at most once
// per interval.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.last.IsZero() {
		if wait := r.minInterval - r.now().Sub(r.last); wait > 0 {
			if err := r.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	r.last = r.now()
	return r.policy.Do(ctx, r.refresh)
}

// LastRefresh returns when the most recent refresh was started. The zero
// time means no refresh has run yet.
func (r *Refresher) LastRefresh() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
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
