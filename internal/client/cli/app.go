package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/jonboulle/clockwork"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// SessionExpiredNotice is printed when a failed refresh ends the session.
const SessionExpiredNotice = "Session expired, please log in again"

type App struct {
	config *config.Config
	auth   services.AuthService
	shop   services.ShopService
	state  *session.State
	reader *bufio.Reader
	out    io.Writer
	clock  clockwork.Clock
	log    logging.Logger

	closers []func() error

	mu   sync.RWMutex
	mode Mode
}

func newApp(c *config.Config, auth services.AuthService, shop services.ShopService, state *session.State,
	reader *bufio.Reader, out io.Writer, clock clockwork.Clock, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		config: c,
		auth:   auth,
		shop:   shop,
		state:  state,
		reader: reader,
		out:    out,
		clock:  clock,
		log:    log,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.LoggedIn()
}

// Run starts the watchers and blocks in the REPL until the user exits or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, unsubscribe := a.state.Subscribe()
	defer unsubscribe()

	go a.watchSession(ctx, events)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)

	return a.Close()
}

// Close releases the resources opened by NewApp.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) getStatus() string {
	s := "guest"
	if a.isLoggedIn() {
		s = "logged in"
	}
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return "(" + s + ")"
}
