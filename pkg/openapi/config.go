package openapi

import "os"

const (
	defaultTitle       = "ReviewGuard API"
	defaultDescription = "Fake review verdicts, verdict history, and dashboard insights."
)

// Config sets the document's info block. Version comes from the service.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills unset fields from env, then from defaults. It never fails.
func (c *Config) Finalize(env *ConfigEnv) error {
	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
	}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	return nil
}

// Merge overwrites fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func override(dst *string, key string) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
