package storage

import (
	"fmt"
	"os"
	"strconv"
)

// Config locates the export container and bounds list and retry behavior.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	// MaxListSize is the default page size for listings, capped at MaxListCap.
	MaxListSize int32 `toml:"max_list_size"`
	// MaxRetries bounds SDK retries per request. Negative disables retries.
	MaxRetries int32 `toml:"max_retries"`
}

// Env names the environment variables that override Config.
type Env struct {
	ContainerName    string
	ConnectionString string
	MaxListSize      string
	MaxRetries       string
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "exports"
	}
	if c.MaxListSize == 0 {
		c.MaxListSize = 50
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}

	if env != nil {
		if v := os.Getenv(env.ContainerName); env.ContainerName != "" && v != "" {
			c.ContainerName = v
		}
		if v := os.Getenv(env.ConnectionString); env.ConnectionString != "" && v != "" {
			c.ConnectionString = v
		}
		if n, ok := envInt32(env.MaxListSize); ok && n > 0 {
			c.MaxListSize = n
		}
		if n, ok := envInt32(env.MaxRetries); ok {
			c.MaxRetries = n
		}
	}

	c.MaxListSize = min(c.MaxListSize, MaxListCap)

	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string required")
	}
	return nil
}

// Merge overwrites fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
}

func envInt32(key string) (int32, bool) {
	if key == "" {
		return 0, false
	}
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}
