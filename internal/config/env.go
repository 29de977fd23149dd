package config

import (
	"fmt"
	"time"
)

const envPrefix = "LENDBOOK_"

// parseEnv overlays LENDBOOK_* variables.
func parseEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	setString(&cfg.DBPath, getenv(envPrefix+"DB_PATH"))
	setString(&cfg.ListenAddr, getenv(envPrefix+"LISTEN_ADDR"))
	setString(&cfg.JWTSecret, getenv(envPrefix+"JWT_SECRET"))
	setString(&cfg.RedisAddr, getenv(envPrefix+"REDIS_ADDR"))
	setString(&cfg.RedisStream, getenv(envPrefix+"REDIS_STREAM"))
	setString(&cfg.LogLevel, getenv(envPrefix+"LOG_LEVEL"))

	for name, dst := range map[string]*time.Duration{
		"TOKEN_TTL":         &cfg.TokenTTL,
		"REMINDER_INTERVAL": &cfg.ReminderInterval,
	} {
		raw := getenv(envPrefix + name)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
