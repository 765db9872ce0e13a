package gateway

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const (
	refreshKey            = "refresh"
	defaultRefreshTimeout = 10 * time.Second
)

// LogoutNotifier is told when a failed refresh ends the session.
// *session.State implements it.
type LogoutNotifier interface {
	MarkLoggedOut(reason error)
}

// RefreshCoordinator owns the refresh operation. At most one call to the
// Refresher is in flight; callers arriving meanwhile wait for its outcome.
type RefreshCoordinator struct {
	store     credentials.Store
	refresher Refresher
	notifier  LogoutNotifier
	clock     clockwork.Clock
	timeout   time.Duration
	log       logging.Logger

	group singleflight.Group
	calls atomic.Int64
}

type CoordinatorConfig struct {
	Store     credentials.Store
	Refresher Refresher
	Notifier  LogoutNotifier
	Clock     clockwork.Clock
	Timeout   time.Duration
	Logger    logging.Logger
}

func NewRefreshCoordinator(cfg CoordinatorConfig) *RefreshCoordinator {
	c := &RefreshCoordinator{
		store:     cfg.Store,
		refresher: cfg.Refresher,
		notifier:  cfg.Notifier,
		clock:     cfg.Clock,
		timeout:   cfg.Timeout,
		log:       cfg.Logger,
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.timeout <= 0 {
		c.timeout = defaultRefreshTimeout
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	return c
}

// Calls returns how many times the Refresher was actually invoked.
func (c *RefreshCoordinator) Calls() int64 {
	return c.calls.Load()
}

// Refresh returns a usable pair replacing stale, the access credential the
// caller was holding. It joins an in-flight refresh when there is one.
//
// The shared refresh is not cancelled by ctx; a caller whose ctx ends stops
// waiting and gets ctx.Err() while the others still receive the result.
func (c *RefreshCoordinator) Refresh(ctx context.Context, stale string) (credentials.Credentials, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(refreshKey, func() (any, error) {
		return c.refresh(detached, stale)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug(ctx, "refresh result shared between callers")
		}
		if res.Err != nil {
			return credentials.Credentials{}, res.Err
		}
		return res.Val.(credentials.Credentials), nil
	case <-ctx.Done():
		return credentials.Credentials{}, ctx.Err()
	}
}

func (c *RefreshCoordinator) refresh(ctx context.Context, stale string) (credentials.Credentials, error) {
	current, err := c.store.Load(ctx)
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}

	if current.HasAccess() && current.AccessToken != stale &&
		!credentials.Expired(current.AccessToken, c.clock.Now()) {
		c.log.Debug(ctx, "access credential already rotated, refresh skipped")
		return current, nil
	}

	if !current.HasRefresh() {
		return c.fail(ctx, ErrNoRefreshCredential)
	}

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.calls.Add(1)
	issued, err := c.refresher.Refresh(rctx, current.RefreshToken)
	if err != nil {
		return c.fail(ctx, err)
	}
	if !issued.HasRefresh() {
		issued.RefreshToken = current.RefreshToken
	}

	if err := c.store.Save(ctx, issued); err != nil {
		return c.fail(ctx, fmt.Errorf("save refreshed credentials: %w", err))
	}

	c.log.Info(ctx, "access credential refreshed")
	return issued, nil
}

func (c *RefreshCoordinator) fail(ctx context.Context, cause error) (credentials.Credentials, error) {
	c.log.Warn(ctx, "credential refresh failed, logging out", "error", cause)
	return credentials.Credentials{}, c.logout(ctx, cause)
}

// logout clears the slot and ends the session.
func (c *RefreshCoordinator) logout(ctx context.Context, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear credentials", "error", err)
	}
	return c.endSession(cause)
}

// endSession notifies and returns the terminal error without touching the store.
func (c *RefreshCoordinator) endSession(cause error) error {
	err := fmt.Errorf("%w: %w", ErrAuthenticationFailed, cause)
	if c.notifier != nil {
		c.notifier.MarkLoggedOut(err)
	}
	return err
}
