package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/jonboulle/clockwork"
)

// NewApp builds the credential store, session, gateway, API client and
// services described by c. The App owns the store; App.Close releases it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	store, closeStore, err := openCredentialStore(ctx, c)
	if err != nil {
		return nil, err
	}

	state, err := session.FromStore(ctx, store)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}
	gw, err := newGateway(c, store, state, httpClient, log)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, httpClient, gw, log)
	auth := services.NewAuthService(apiClient, store, state, log)
	shop := services.NewShopService(apiClient, state)

	app := newApp(c, auth, shop, state, bufio.NewReader(os.Stdin), os.Stdout, clockwork.NewRealClock(), log)
	app.closers = append(app.closers, closeStore)
	return app, nil
}

// newGateway wraps httpClient for authenticated calls. The refresh call uses
// a client without its own timeout: RefreshTimeout alone bounds it.
func newGateway(c *config.Config, store credentials.Store, notifier gateway.LogoutNotifier,
	httpClient *http.Client, log logging.Logger) (*gateway.Gateway, error) {
	refreshClient := &http.Client{Transport: httpClient.Transport}
	return gateway.New(gateway.Config{
		Store:                store,
		Refresher:            gateway.NewHTTPRefresher(refreshClient, c.RefreshURL(), c.RefreshCredentialMode, c.RefreshCookieName),
		Notifier:             notifier,
		HTTPClient:           httpClient,
		RefreshTimeout:       c.RefreshTimeout,
		InvalidTokenMessages: c.InvalidTokenMessages,
		Logger:               log,
	})
}

// openCredentialStore opens the store kind named by c. With a passphrase
// the store is wrapped so the refresh credential is sealed at rest.
func openCredentialStore(ctx context.Context, c *config.Config) (credentials.Store, func() error, error) {
	var (
		store  credentials.Store
		closer = func() error { return nil }
	)

	switch c.CredentialStore {
	case config.StoreMemory:
		store = credentials.NewMemoryStore(credentials.Credentials{})

	case config.StoreSQLite, "":
		db, err := credentials.OpenSQLite(ctx, c.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		store, closer = credentials.NewSQLiteStore(db), db.Close

	case config.StoreRedis:
		rc, err := credentials.NewRedisClient(ctx, credentials.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		store, closer = credentials.NewRedisStore(rc, c.RedisKeyPrefix), rc.Close

	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", c.CredentialStore)
	}

	if c.CredentialPassphrase != "" {
		store = credentials.NewSealedStore(store, []byte(c.CredentialPassphrase))
	}
	return store, closer, nil
}
