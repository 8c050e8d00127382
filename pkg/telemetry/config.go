package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds logging and error-reporting settings.
type Config struct {
	LogLevel    string  `toml:"log_level"`
	LogFormat   string  `toml:"log_format"`
	SentryDSN   string  `toml:"sentry_dsn"`
	Environment string  `toml:"environment"`
	SampleRate  float64 `toml:"sample_rate"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	LogLevel    string
	LogFormat   string
	SentryDSN   string
	Environment string
	SampleRate  string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != "" {
		c.LogFormat = overlay.LogFormat
	}
	if overlay.SentryDSN != "" {
		c.SentryDSN = overlay.SentryDSN
	}
	if overlay.Environment != "" {
		c.Environment = overlay.Environment
	}
	if overlay.SampleRate != 0 {
		c.SampleRate = overlay.SampleRate
	}
}

// Level returns the parsed slog level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Environment == "" {
		c.Environment = "local"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.LogLevel != "" {
		if v := os.Getenv(env.LogLevel); v != "" {
			c.LogLevel = v
		}
	}
	if env.LogFormat != "" {
		if v := os.Getenv(env.LogFormat); v != "" {
			c.LogFormat = v
		}
	}
	if env.SentryDSN != "" {
		if v := os.Getenv(env.SentryDSN); v != "" {
			c.SentryDSN = v
		}
	}
	if env.Environment != "" {
		if v := os.Getenv(env.Environment); v != "" {
			c.Environment = v
		}
	}
	if env.SampleRate != "" {
		if v := os.Getenv(env.SampleRate); v != "" {
			if rate, err := strconv.ParseFloat(v, 64); err == nil {
				c.SampleRate = rate
			}
		}
	}
}

func (c *Config) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be within [0, 1]")
	}
	return nil
}
