package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetix/backend/internal/retry"
)

// fakeClock advances only when slept on.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestRefresher(fn RefreshFunc, policy retry.Policy) (*Refresher, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	r := NewRefresher(fn, DefaultMinInterval, policy)
	r.now = clock.Now
	r.sleep = clock.Sleep
	return r, clock
}

func TestRefreshFirstCallDoesNotWait(t *testing.T) {
	calls := 0
	r, clock := newTestRefresher(func(context.Context) error {
		calls++
		return nil
	}, retry.Policy{})

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.slept)
	assert.Equal(t, clock.now, r.LastRefresh())
}

func TestRefreshWaitsOutMinInterval(t *testing.T) {
	calls := 0
	r, clock := newTestRefresher(func(context.Context) error {
		calls++
		return nil
	}, retry.Policy{})
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))

	// 2s later: a second refresh must wait the remaining 3s
	clock.now = clock.now.Add(2 * time.Second)
	require.NoError(t, r.Refresh(ctx))
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{3 * time.Second}, clock.slept)
}

func TestRefreshNoWaitAfterInterval(t *testing.T) {
	r, clock := newTestRefresher(func(context.Context) error { return nil }, retry.Policy{})
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	clock.now = clock.now.Add(6 * time.Second)
	require.NoError(t, r.Refresh(ctx))
	assert.Empty(t, clock.slept)
}

func TestRefreshAdvancesTimestampOnFailure(t *testing.T) {
	boom := errors.New("refresh failed")
	r, clock := newTestRefresher(func(context.Context) error { return boom }, retry.Policy{})

	assert.ErrorIs(t, r.Refresh(context.Background()), boom)
	assert.Equal(t, clock.now, r.LastRefresh(), "throttle window opens even when the call fails")
}

func TestRefreshRetriesRateLimitedCalls(t *testing.T) {
	rateLimited := errors.New("rate limited")
	calls := 0
	policy := retry.Policy{
		MaxAttempts: 3,
		Retryable:   func(err error) bool { return errors.Is(err, rateLimited) },
	}
	r, _ := newTestRefresher(func(context.Context) error {
		calls++
		if calls < 3 {
			return rateLimited
		}
		return nil
	}, policy)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, 3, calls)
}
