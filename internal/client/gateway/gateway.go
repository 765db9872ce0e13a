package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/jonboulle/clockwork"
)

const defaultRequestTimeout = 30 * time.Second

// Request is an outbound call. Body is buffered so the call can be re-issued
// after a refresh.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type Config struct {
	Store     credentials.Store
	Refresher Refresher
	Notifier  LogoutNotifier

	// HTTPClient sends the wrapped requests. When nil a client with
	// RequestTimeout is created.
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	RefreshTimeout time.Duration

	// InvalidTokenMessages are server messages treated like a 401.
	InvalidTokenMessages []string

	Clock  clockwork.Clock
	Logger logging.Logger
}

type Gateway struct {
	client   *http.Client
	store    credentials.Store
	coord    *RefreshCoordinator
	detector *RejectionDetector
	clock    clockwork.Clock
	log      logging.Logger
}

func New(cfg Config) (*Gateway, error) {
	if cfg.Store == nil {
		return nil, errors.New("gateway: credential store is required")
	}
	if cfg.Refresher == nil {
		return nil, errors.New("gateway: refresher is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger.With("component", "gateway")
	return &Gateway{
		client: client,
		store:  cfg.Store,
		coord: NewRefreshCoordinator(CoordinatorConfig{
			Store:     cfg.Store,
			Refresher: cfg.Refresher,
			Notifier:  cfg.Notifier,
			Clock:     cfg.Clock,
			Timeout:   cfg.RefreshTimeout,
			Logger:    log,
		}),
		detector: NewRejectionDetector(cfg.InvalidTokenMessages),
		clock:    cfg.Clock,
		log:      log,
	}, nil
}

func (g *Gateway) Coordinator() *RefreshCoordinator {
	return g.coord
}

// Do sends req with the current access credential and returns the final
// response. The caller closes its body.
//
// A rejected call is retried once after a refresh; if the retry is rejected
// too, that response is returned. Errors matching ErrAuthenticationFailed
// mean the session has ended. Transport errors are returned unchanged.
func (g *Gateway) Do(ctx context.Context, req Request) (*http.Response, error) {
	var resp *http.Response
	err := g.run(ctx, func(ctx context.Context, token string) (bool, error) {
		if resp != nil {
			discard(resp)
			resp = nil
		}
		r, err := g.send(ctx, req, token)
		if err != nil {
			return false, err
		}
		resp = r
		return g.detector.Rejected(r)
	})
	if err != nil {
		if resp != nil {
			discard(resp)
		}
		return nil, err
	}
	return resp, nil
}

// attemptFunc performs the call once with token and reports a rejection.
type attemptFunc func(ctx context.Context, token string) (rejected bool, err error)

func (g *Gateway) run(ctx context.Context, attempt attemptFunc) error {
	creds, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if creds.IsZero() {
		return g.coord.endSession(ErrNotLoggedIn)
	}

	token := creds.AccessToken
	refreshed := false
	if creds.HasAccess() && credentials.Expired(token, g.clock.Now()) {
		g.log.Debug(ctx, "access credential expired, refreshing before request")
		fresh, err := g.coord.Refresh(ctx, token)
		if err != nil {
			return err
		}
		token, refreshed = fresh.AccessToken, true
	}

	rejected, err := attempt(ctx, token)
	if err != nil || !rejected {
		return err
	}
	if refreshed {
		g.log.Warn(ctx, "fresh access credential rejected, not retrying")
		return nil
	}

	g.log.Debug(ctx, "access credential rejected, refreshing")
	fresh, err := g.coord.Refresh(ctx, token)
	if err != nil {
		return err
	}
	if _, err := attempt(ctx, fresh.AccessToken); err != nil {
		return err
	}
	return nil
}

func (g *Gateway) send(ctx context.Context, req Request, token string) (*http.Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if token != "" {
		r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return g.client.Do(r)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxInspectedBody))
	_ = resp.Body.Close()
}
