package classifier

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by Config.Provider.
const (
	ProviderProcess = "process"
	ProviderHTTP    = "http"
	ProviderOpenAI  = "openai"
)

// Config selects and configures the classifier provider.
type Config struct {
	Provider string   `toml:"provider"`
	Command  string   `toml:"command"`
	Args     []string `toml:"args"`
	Endpoint string   `toml:"endpoint"`
	APIKey   string   `toml:"api_key"`
	Model    string   `toml:"model"`
	BaseURL  string   `toml:"base_url"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider string
	Command  string
	Args     string
	Endpoint string
	APIKey   string
	Model    string
	BaseURL  string
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
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Command != "" {
		c.Command = overlay.Command
	}
	if len(overlay.Args) > 0 {
		c.Args = overlay.Args
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderProcess
	}
	if c.Provider == ProviderProcess && c.Command == "" {
		c.Command = "python3"
		if len(c.Args) == 0 {
			c.Args = []string{"ml_bridge.py"}
		}
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.Command != "" {
		if v := os.Getenv(env.Command); v != "" {
			c.Command = v
		}
	}
	if env.Args != "" {
		if v := os.Getenv(env.Args); v != "" {
			c.Args = strings.Fields(v)
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderProcess:
		if c.Command == "" {
			return fmt.Errorf("command required for process provider")
		}
	case ProviderHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required for http provider")
		}
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("api_key required for openai provider")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}
