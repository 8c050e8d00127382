package verdicts

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls scoring timeouts, batch limits, and the synthetic URL source.
type Config struct {
	Timeout          string          `toml:"timeout"`
	MaxBatch         int             `toml:"max_batch"`
	BatchConcurrency int             `toml:"batch_concurrency"`
	Synthetic        SyntheticConfig `toml:"synthetic"`
}

// SyntheticConfig seeds the synthetic URL source and sizes its cache.
// Seed 0 draws a random seed at startup; CacheTTL "0s" disables caching.
type SyntheticConfig struct {
	Seed     uint64 `toml:"seed"`
	CacheTTL string `toml:"cache_ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Timeout          string
	MaxBatch         string
	BatchConcurrency string
	Seed             string
	CacheTTL         string
}

// TimeoutDuration parses Timeout. Call after Finalize.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// CacheTTLDuration parses the synthetic cache TTL. Call after Finalize.
func (c *Config) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.Synthetic.CacheTTL)
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
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxBatch != 0 {
		c.MaxBatch = overlay.MaxBatch
	}
	if overlay.BatchConcurrency != 0 {
		c.BatchConcurrency = overlay.BatchConcurrency
	}
	if overlay.Synthetic.Seed != 0 {
		c.Synthetic.Seed = overlay.Synthetic.Seed
	}
	if overlay.Synthetic.CacheTTL != "" {
		c.Synthetic.CacheTTL = overlay.Synthetic.CacheTTL
	}
}

func (c *Config) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = 25
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 4
	}
	if c.Synthetic.CacheTTL == "" {
		c.Synthetic.CacheTTL = "10m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxBatch != "" {
		if v := os.Getenv(env.MaxBatch); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxBatch = n
			}
		}
	}
	if env.BatchConcurrency != "" {
		if v := os.Getenv(env.BatchConcurrency); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.BatchConcurrency = n
			}
		}
	}
	if env.Seed != "" {
		if v := os.Getenv(env.Seed); v != "" {
			if n, err := strconv.ParseUint(v, 10, 64); err == nil {
				c.Synthetic.Seed = n
			}
		}
	}
	if env.CacheTTL != "" {
		if v := os.Getenv(env.CacheTTL); v != "" {
			c.Synthetic.CacheTTL = v
		}
	}
}

func (c *Config) validate() error {
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("max_batch must be positive")
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("batch_concurrency must be positive")
	}
	if d, err := time.ParseDuration(c.Synthetic.CacheTTL); err != nil || d < 0 {
		return fmt.Errorf("invalid synthetic cache_ttl: %q", c.Synthetic.CacheTTL)
	}
	return nil
}
