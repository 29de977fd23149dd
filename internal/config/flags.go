package config

import (
	"flag"
	"fmt"
)

// parseFlags overlays command-line flags and returns the remaining arguments.
//
// Supported flags:
//
//	-c, -config string        JSON config file (read by parseJSON)
//	-db string                SQLite database file
//	-addr string              API bind address
//	-jwt-secret string        session token secret
//	-token-ttl duration       session token lifetime
//	-reminder-interval dur    time between reminder passes
//	-redis-addr string        Redis address for the reminder stream
//	-redis-stream string      Redis stream name
//	-log-level string         debug, info, warn, error
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("lendbook", flag.ContinueOnError)

	var ignored string
	fs.StringVar(&ignored, "config", "", "path to config file")
	fs.StringVar(&ignored, "c", "", "path to config file (short)")

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "API bind address")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "session token secret")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "session token lifetime")
	fs.DurationVar(&cfg.ReminderInterval, "reminder-interval", cfg.ReminderInterval, "time between reminder passes")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the reminder stream (empty logs reminders)")
	fs.StringVar(&cfg.RedisStream, "redis-stream", cfg.RedisStream, "Redis stream name")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return fs.Args(), nil
}
