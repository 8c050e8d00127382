package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

var serverEnv = map[string]func(c *ServerConfig) *string{
	"REVIEWGUARD_SERVER_HOST":                func(c *ServerConfig) *string { return &c.Host },
	"REVIEWGUARD_SERVER_READ_TIMEOUT":        func(c *ServerConfig) *string { return &c.ReadTimeout },
	"REVIEWGUARD_SERVER_READ_HEADER_TIMEOUT": func(c *ServerConfig) *string { return &c.ReadHeaderTimeout },
	"REVIEWGUARD_SERVER_WRITE_TIMEOUT":       func(c *ServerConfig) *string { return &c.WriteTimeout },
	"REVIEWGUARD_SERVER_IDLE_TIMEOUT":        func(c *ServerConfig) *string { return &c.IdleTimeout },
	"REVIEWGUARD_SERVER_SHUTDOWN_TIMEOUT":    func(c *ServerConfig) *string { return &c.ShutdownTimeout },
}

const envServerPort = "REVIEWGUARD_SERVER_PORT"

// ServerConfig holds listener and timeout settings for the HTTP server.
// Timeouts are Go duration strings. WriteTimeout must outlast the classifier
// timeout or slow verdicts are cut off mid-response.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration       { return duration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return duration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration      { return duration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration       { return duration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return duration(c.ShutdownTimeout) }

// Finalize applies defaults, then environment overrides, then validates.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields set in overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, field := range serverEnv {
		if v := *field(overlay); v != "" {
			*field(c) = v
		}
	}
}

func (c *ServerConfig) loadDefaults() {
	defaults := map[*string]string{
		&c.Host:              "0.0.0.0",
		&c.ReadTimeout:       "30s",
		&c.ReadHeaderTimeout: "10s",
		&c.WriteTimeout:      "2m",
		&c.IdleTimeout:       "2m",
		&c.ShutdownTimeout:   "30s",
	}
	for field, v := range defaults {
		if *field == "" {
			*field = v
		}
	}
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) loadEnv() {
	for key, field := range serverEnv {
		if v := os.Getenv(key); v != "" {
			*field(c) = v
		}
	}
	if v := os.Getenv(envServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	timeouts := []struct {
		name  string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"read_header_timeout", c.ReadHeaderTimeout},
		{"write_timeout", c.WriteTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if d, err := time.ParseDuration(t.value); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s %q", t.name, t.value)
		}
	}
	return nil
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
