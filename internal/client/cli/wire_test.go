package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, kind string) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.CredentialStore = kind
	c.DatabasePath = filepath.Join(t.TempDir(), "storefront.db")
	return c
}

func TestOpenCredentialStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	for _, kind := range []string{config.StoreMemory, config.StoreSQLite, config.StoreRedis} {
		t.Run(kind, func(t *testing.T) {
			c := testConfig(t, kind)
			c.RedisAddr = mr.Addr()

			store, closeStore, err := openCredentialStore(ctx, c)
			require.NoError(t, err)
			defer closeStore()

			want := credentials.Credentials{AccessToken: "A", RefreshToken: "R"}
			require.NoError(t, store.Save(ctx, want))
			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestOpenCredentialStore_SealedWithPassphrase(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t, config.StoreSQLite)
	c.CredentialPassphrase = "correct horse"

	store, closeStore, err := openCredentialStore(ctx, c)
	require.NoError(t, err)
	defer closeStore()

	_, sealed := store.(*credentials.SealedStore)
	require.True(t, sealed)
	require.NoError(t, store.Save(ctx, credentials.Credentials{AccessToken: "A", RefreshToken: "R"}))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R", got.RefreshToken)
}

func TestOpenCredentialStore_Errors(t *testing.T) {
	_, _, err := openCredentialStore(context.Background(), testConfig(t, "etcd"))
	require.ErrorContains(t, err, "unknown credential store")

	c := testConfig(t, config.StoreRedis)
	c.RedisAddr = "127.0.0.1:1"
	_, _, err = openCredentialStore(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_RestoresSessionFromStore(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t, config.StoreSQLite)

	store, closeStore, err := openCredentialStore(ctx, c)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, credentials.Credentials{RefreshToken: "R"}))
	require.NoError(t, closeStore())

	app, err := NewApp(ctx, c, nil)
	require.NoError(t, err)
	defer app.Close()

	assert.True(t, app.isLoggedIn())
}

func slowRefreshServer(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/user/refresh", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"fresh"}`))
	})
	mux.HandleFunc("/user/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Ali"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewGateway_RefreshBoundOnlyByRefreshTimeout(t *testing.T) {
	tests := []struct {
		name           string
		refreshTimeout time.Duration
		wantErr        bool
	}{
		{name: "refresh slower than request timeout", refreshTimeout: 2 * time.Second},
		{name: "refresh slower than refresh timeout", refreshTimeout: 50 * time.Millisecond, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := slowRefreshServer(t, 200*time.Millisecond)

			c := testConfig(t, config.StoreMemory)
			c.APIBaseURL = srv.URL
			c.RequestTimeout = 100 * time.Millisecond
			c.RefreshTimeout = tt.refreshTimeout

			store := credentials.NewMemoryStore(credentials.Credentials{AccessToken: "opaque", RefreshToken: "r1"})
			state := session.New(session.StatusLoggedIn)
			gw, err := newGateway(c, store, state, &http.Client{Timeout: c.RequestTimeout}, nil)
			require.NoError(t, err)

			resp, err := gw.Do(context.Background(), gateway.Request{URL: srv.URL + "/user/me"})
			if tt.wantErr {
				require.ErrorIs(t, err, gateway.ErrAuthenticationFailed)
				assert.False(t, state.LoggedIn())
				return
			}
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			stored, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, credentials.Credentials{AccessToken: "fresh", RefreshToken: "r1"}, stored)
		})
	}
}
