package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "./data/lendbook.db", c.DBPath)
	assert.Equal(t, "127.0.0.1:8080", c.ListenAddr)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 12*time.Hour, c.ReminderInterval)
	assert.Equal(t, "lendbook:reminders", c.RedisStream)
	assert.Empty(t, c.RedisAddr)
}

func TestLoad_NoInput(t *testing.T) {
	c, rest, err := Load(nil, env(nil))
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
	assert.Empty(t, rest)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"db_path": "/from/json.db",
		"listen_addr": "127.0.0.1:9000",
		"reminder_interval": "1h",
		"token_ttl": 60000000000,
		"log_level": "debug"
	}`), 0o600))

	c, rest, err := Load(
		[]string{"-c", path, "-addr", "127.0.0.1:9100", "list", "--status", "Paid"},
		env(map[string]string{
			"LENDBOOK_LISTEN_ADDR":       "127.0.0.1:9050",
			"LENDBOOK_REMINDER_INTERVAL": "30m",
			"LENDBOOK_REDIS_ADDR":        "localhost:6379",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "/from/json.db", c.DBPath, "json over defaults")
	assert.Equal(t, time.Minute, c.TokenTTL, "json nanoseconds")
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 30*time.Minute, c.ReminderInterval, "env over json")
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, "127.0.0.1:9100", c.ListenAddr, "flags over env")
	assert.Equal(t, []string{"list", "--status", "Paid"}, rest)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, _, err := Load([]string{"-config=" + filepath.Join(t.TempDir(), "nope.json")}, env(nil))
		assert.Error(t, err)
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"token_ttl": true}`), 0o600))

		_, _, err := Load([]string{"-c", path}, env(nil))
		assert.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		_, _, err := Load(nil, env(map[string]string{"LENDBOOK_TOKEN_TTL": "forever"}))
		assert.ErrorContains(t, err, "LENDBOOK_TOKEN_TTL")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, _, err := Load([]string{"-nope"}, env(nil))
		assert.Error(t, err)
	})
}

func TestCheckExposure(t *testing.T) {
	tests := []struct {
		name   string
		addr   string
		secret string
		want   error
	}{
		{"default secret on loopback", "127.0.0.1:8080", DefaultJWTSecret, nil},
		{"default secret on localhost", "localhost:8080", DefaultJWTSecret, nil},
		{"default secret on ipv6 loopback", "[::1]:8080", DefaultJWTSecret, nil},
		{"default secret on all interfaces", ":8080", DefaultJWTSecret, ErrDefaultSecret},
		{"default secret on public address", "0.0.0.0:8080", DefaultJWTSecret, ErrDefaultSecret},
		{"custom secret on public address", "0.0.0.0:8080", "s3cret-value", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{ListenAddr: tt.addr, JWTSecret: tt.secret}
			assert.Equal(t, tt.want, c.CheckExposure())
			assert.Equal(t, tt.secret == DefaultJWTSecret, c.UsesDefaultSecret())
		})
	}
}
