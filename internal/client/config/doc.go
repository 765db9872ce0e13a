// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-s string   credential store (memory|sqlite|redis)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "api_base_url": "https://shop.example.uz/api",
//	  "refresh_path": "/user/refresh",
//	  "refresh_credential_mode": "cookie",
//	  "refresh_cookie_name": "refreshToken",
//	  "request_timeout": "15s",
//	  "refresh_timeout": "10s",
//	  "credential_store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "credential_passphrase": "...",
//	  "invalid_token_messages": ["Token noto'g'ri"],
//	  "online_check_interval": "3s",
//	  "log_level": "debug"
//	}
//
// This package does not read environment variables.
package config
