package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	credentials.Store
	saveErr error
}

func (f *failingStore) Save(ctx context.Context, c credentials.Credentials) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, c)
}

func newCoordinator(store credentials.Store, ref Refresher, state *session.State, timeout time.Duration) *RefreshCoordinator {
	cfg := CoordinatorConfig{
		Store:     store,
		Refresher: ref,
		Clock:     clockwork.NewFakeClockAt(testNow),
		Timeout:   timeout,
	}
	if state != nil {
		cfg.Notifier = state
	}
	return NewRefreshCoordinator(cfg)
}

func TestRefresh_SkipsWhenAlreadyRotated(t *testing.T) {
	stale := mintToken(t, "stale", testNow.Add(time.Hour))
	rotated := mintToken(t, "rotated", testNow.Add(time.Hour))
	store := credentials.NewMemoryStore(credentials.Credentials{AccessToken: rotated, RefreshToken: "r2"})
	ref := &fakeRefresher{}
	c := newCoordinator(store, ref, nil, time.Second)

	got, err := c.Refresh(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, rotated, got.AccessToken)
	assert.Equal(t, int32(0), ref.calls.Load())
}

func TestRefresh_RotatedButExpiredStillRefreshes(t *testing.T) {
	stale := mintToken(t, "stale", testNow.Add(time.Hour))
	expired := mintToken(t, "expired", testNow.Add(-time.Hour))
	fresh := mintToken(t, "fresh", testNow.Add(time.Hour))
	store := credentials.NewMemoryStore(credentials.Credentials{AccessToken: expired, RefreshToken: "r1"})
	ref := &fakeRefresher{fn: issuing(credentials.Credentials{AccessToken: fresh})}
	c := newCoordinator(store, ref, nil, time.Second)

	got, err := c.Refresh(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, fresh, got.AccessToken)
	assert.Equal(t, "r1", got.RefreshToken)
	assert.Equal(t, int32(1), ref.calls.Load())
}

func TestRefresh_TimeoutIsFailure(t *testing.T) {
	stale := mintToken(t, "stale", testNow.Add(time.Hour))
	store := credentials.NewMemoryStore(credentials.Credentials{AccessToken: stale, RefreshToken: "r1"})
	ref := &fakeRefresher{gate: make(chan struct{})}
	state := session.New(session.StatusLoggedIn)
	c := newCoordinator(store, ref, state, 30*time.Millisecond)

	_, err := c.Refresh(context.Background(), stale)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, state.LoggedIn())

	stored, _ := store.Load(context.Background())
	assert.True(t, stored.IsZero())
}

func TestRefresh_WaiterCancellationLeavesOthersUnaffected(t *testing.T) {
	stale := mintToken(t, "stale", testNow.Add(time.Hour))
	fresh := mintToken(t, "fresh", testNow.Add(time.Hour))
	store := credentials.NewMemoryStore(credentials.Credentials{AccessToken: stale, RefreshToken: "r1"})
	ref := &fakeRefresher{gate: make(chan struct{}), fn: issuing(credentials.Credentials{AccessToken: fresh})}
	c := newCoordinator(store, ref, nil, time.Second)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	type result struct {
		creds credentials.Credentials
		err   error
	}
	leader := make(chan result, 1)
	go func() {
		got, err := c.Refresh(leaderCtx, stale)
		leader <- result{got, err}
	}()
	require.Eventually(t, func() bool { return ref.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	waiter := make(chan result, 1)
	go func() {
		got, err := c.Refresh(context.Background(), stale)
		waiter <- result{got, err}
	}()

	cancelLeader()
	res := <-leader
	require.ErrorIs(t, res.err, context.Canceled)

	close(ref.gate)
	res = <-waiter
	require.NoError(t, res.err)
	assert.Equal(t, fresh, res.creds.AccessToken)
	assert.Equal(t, int32(1), ref.calls.Load())

	stored, _ := store.Load(context.Background())
	assert.Equal(t, fresh, stored.AccessToken)
}

func TestRefresh_SaveFailureIsFailure(t *testing.T) {
	stale := mintToken(t, "stale", testNow.Add(time.Hour))
	inner := credentials.NewMemoryStore(credentials.Credentials{AccessToken: stale, RefreshToken: "r1"})
	store := &failingStore{Store: inner, saveErr: errors.New("disk full")}
	ref := &fakeRefresher{fn: issuing(credentials.Credentials{AccessToken: "x"})}
	state := session.New(session.StatusLoggedIn)
	c := newCoordinator(store, ref, state, time.Second)

	_, err := c.Refresh(context.Background(), stale)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, state.LoggedIn())
}

func TestNewRefreshCoordinator_Defaults(t *testing.T) {
	c := NewRefreshCoordinator(CoordinatorConfig{})
	assert.Equal(t, defaultRefreshTimeout, c.timeout)
	assert.NotNil(t, c.clock)
	assert.NotNil(t, c.log)
}
