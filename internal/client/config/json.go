package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so they may be written as "3s" or as nanoseconds.
// Pointers distinguish an absent key from an explicit zero.
type JsonConfig struct {
	APIBaseURL            string          `json:"api_base_url"`
	RefreshPath           string          `json:"refresh_path"`
	RefreshCredentialMode string          `json:"refresh_credential_mode"`
	RefreshCookieName     string          `json:"refresh_cookie_name"`
	RequestTimeout        *timex.Duration `json:"request_timeout"`
	RefreshTimeout        *timex.Duration `json:"refresh_timeout"`
	CredentialStore       string          `json:"credential_store"`
	DatabasePath          string          `json:"database_path"`
	RedisAddr             string          `json:"redis_addr"`
	RedisPassword         string          `json:"redis_password"`
	RedisDB               *int            `json:"redis_db"`
	RedisKeyPrefix        string          `json:"redis_key_prefix"`
	CredentialPassphrase  string          `json:"credential_passphrase"`
	InvalidTokenMessages  []string        `json:"invalid_token_messages"`
	OnlineCheckInterval   *timex.Duration `json:"online_check_interval"`
	LogLevel              string          `json:"log_level"`
}

// parseJson overlays Config with the keys present in the JSON file named by
// -c or -config. Without such a flag it does nothing. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.RefreshPath, jc.RefreshPath)
	if jc.RefreshCredentialMode != "" {
		cfg.RefreshCredentialMode = gateway.RefreshMode(jc.RefreshCredentialMode)
	}
	setString(&cfg.RefreshCookieName, jc.RefreshCookieName)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshTimeout != nil {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	setString(&cfg.CredentialStore, jc.CredentialStore)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	setString(&cfg.RedisKeyPrefix, jc.RedisKeyPrefix)
	setString(&cfg.CredentialPassphrase, jc.CredentialPassphrase)
	if jc.InvalidTokenMessages != nil {
		cfg.InvalidTokenMessages = jc.InvalidTokenMessages
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
