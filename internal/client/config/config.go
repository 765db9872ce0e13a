package config

import (
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/gateway"
)

// Credential store kinds.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the storefront client.
//
// Units: all intervals and timeouts are time.Duration.
type Config struct {
	APIBaseURL string

	// RefreshPath is joined to APIBaseURL to reach the token refresh endpoint.
	RefreshPath           string
	RefreshCredentialMode gateway.RefreshMode
	RefreshCookieName     string

	RequestTimeout time.Duration
	RefreshTimeout time.Duration

	CredentialStore string
	DatabasePath    string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKeyPrefix  string

	// CredentialPassphrase enables at-rest sealing of the refresh credential.
	CredentialPassphrase string

	// InvalidTokenMessages are server messages treated like HTTP 401.
	InvalidTokenMessages []string

	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000"
	c.RefreshPath = "/user/refresh"
	c.RefreshCredentialMode = gateway.RefreshInBody
	c.RefreshCookieName = "refreshToken"
	c.RequestTimeout = 15 * time.Second
	c.RefreshTimeout = 10 * time.Second
	c.CredentialStore = StoreSQLite
	c.DatabasePath = "storefront.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisKeyPrefix = "storefront:credentials"
	c.InvalidTokenMessages = nil
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// RefreshURL is the absolute URL of the token refresh endpoint.
func (c *Config) RefreshURL() string {
	base := c.APIBaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	path := c.RefreshPath
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return base + path
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
