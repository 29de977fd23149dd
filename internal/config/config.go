// Package config handles runtime settings, including defaults, a JSON file
// overlay, LENDBOOK_* environment variables and command-line flags, applied
// in that order.
package config

import (
	"errors"
	"net"
	"time"
)

// DefaultJWTSecret is the development secret used when none is configured.
const DefaultJWTSecret = "change-me"

// ErrDefaultSecret is returned by CheckExposure when the default JWT secret
// would sign tokens for a non-loopback listener.
var ErrDefaultSecret = errors.New("config: the default JWT secret cannot be used on a non-loopback listen address")

// Config holds runtime settings for the lendbook server and CLI.
//
// Fields:
//   - DBPath: SQLite database file.
//   - ListenAddr: API bind address. Loopback by default; the API is not a sync endpoint.
//   - JWTSecret: HMAC secret for session tokens (HS256). Override the default.
//   - TokenTTL: session token lifetime.
//   - ReminderInterval: time between background reminder passes.
//   - RedisAddr / RedisStream: reminder stream; empty RedisAddr logs reminders instead.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DBPath           string
	ListenAddr       string
	JWTSecret        string
	TokenTTL         time.Duration
	ReminderInterval time.Duration
	RedisAddr        string
	RedisStream      string
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "./data/lendbook.db"
	c.ListenAddr = "127.0.0.1:8080"
	c.JWTSecret = DefaultJWTSecret
	c.TokenTTL = 24 * time.Hour
	c.ReminderInterval = 12 * time.Hour
	c.RedisAddr = ""
	c.RedisStream = "lendbook:reminders"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the JSON file named by -c/-config,
// the environment (via getenv) and the flags in args. It returns the
// arguments left after the flags, so commands can follow global flags.
func Load(args []string, getenv func(string) string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, nil, err
	}
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

// UsesDefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// CheckExposure rejects the default JWT secret unless ListenAddr is loopback.
// An empty host binds every interface and is not loopback.
func (c *Config) CheckExposure() error {
	if !c.UsesDefaultSecret() {
		return nil
	}

	host, _, err := net.SplitHostPort(c.ListenAddr)
	if err != nil {
		host = c.ListenAddr
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return ErrDefaultSecret
}
