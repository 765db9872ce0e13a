package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/session"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher probes the API every interval and updates the
// connectivity mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchSession reports sessions ended by a failed refresh. A logout the user
// asked for carries no reason and is not reported.
func (a *App) watchSession(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Status == session.StatusLoggedOut && ev.Reason != nil {
				a.log.Warn(ctx, "session ended", "reason", ev.Reason)
				printlnFn(SessionExpiredNotice)
			}
		case <-ctx.Done():
			return
		}
	}
}
