package identity

import (
	"fmt"
	"os"
	"time"
)

// Config holds token verification settings. The signing key is required;
// there is no fallback secret.
type Config struct {
	SigningKey string `toml:"signing_key"`
	Issuer     string `toml:"issuer"`
	Leeway     string `toml:"leeway"`
	TokenTTL   string `toml:"token_ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	SigningKey string
	Issuer     string
	Leeway     string
	TokenTTL   string
}

// LeewayDuration parses Leeway. Call after Finalize.
func (c *Config) LeewayDuration() time.Duration {
	d, _ := time.ParseDuration(c.Leeway)
	return d
}

// TokenTTLDuration parses TokenTTL. Call after Finalize.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
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
	if overlay.SigningKey != "" {
		c.SigningKey = overlay.SigningKey
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Leeway != "" {
		c.Leeway = overlay.Leeway
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "reviewguard"
	}
	if c.Leeway == "" {
		c.Leeway = "30s"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "1h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.SigningKey != "" {
		if v := os.Getenv(env.SigningKey); v != "" {
			c.SigningKey = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Leeway != "" {
		if v := os.Getenv(env.Leeway); v != "" {
			c.Leeway = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.SigningKey) < 16 {
		return fmt.Errorf("signing_key must be at least 16 bytes")
	}
	if d, err := time.ParseDuration(c.Leeway); err != nil || d < 0 {
		return fmt.Errorf("invalid leeway: %q", c.Leeway)
	}
	if d, err := time.ParseDuration(c.TokenTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid token_ttl: %q", c.TokenTTL)
	}
	return nil
}
