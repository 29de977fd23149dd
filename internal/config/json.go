package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Duration unmarshals from either a Go duration string ("12h") or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// jsonConfig mirrors Config for JSON files. Absent fields keep earlier values.
type jsonConfig struct {
	DBPath           string   `json:"db_path"`
	ListenAddr       string   `json:"listen_addr"`
	JWTSecret        string   `json:"jwt_secret"`
	TokenTTL         Duration `json:"token_ttl"`
	ReminderInterval Duration `json:"reminder_interval"`
	RedisAddr        string   `json:"redis_addr"`
	RedisStream      string   `json:"redis_stream"`
	LogLevel         string   `json:"log_level"`
}

// configPath extracts the value of -c or -config from args without
// touching any other flag.
func configPath(args []string) string {
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, hasValue := strings.Cut(arg, "=")
		name = "-" + strings.TrimLeft(name, "-")
		if name != "-c" && name != "-config" {
			continue
		}
		filtered = append(filtered, arg)
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	var path string
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(filtered)
	return path
}

// parseJSON overlays the JSON file named on the command line, if any.
func parseJSON(cfg *Config, args []string) error {
	path := configPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var c jsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.DBPath, c.DBPath)
	setString(&cfg.ListenAddr, c.ListenAddr)
	setString(&cfg.JWTSecret, c.JWTSecret)
	setDuration(&cfg.TokenTTL, c.TokenTTL.Duration)
	setDuration(&cfg.ReminderInterval, c.ReminderInterval.Duration)
	setString(&cfg.RedisAddr, c.RedisAddr)
	setString(&cfg.RedisStream, c.RedisStream)
	setString(&cfg.LogLevel, c.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
