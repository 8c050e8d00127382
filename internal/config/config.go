// Package config loads service configuration from config.toml, an optional
// config.<env>.toml overlay, and REVIEWGUARD_ environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/verdicts"
	"github.com/JaimeStill/reviewguard/pkg/database"
	"github.com/JaimeStill/reviewguard/pkg/metrics"
	"github.com/JaimeStill/reviewguard/pkg/storage"
	"github.com/JaimeStill/reviewguard/pkg/telemetry"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvServiceEnv             = "REVIEWGUARD_ENV"
	EnvServiceShutdownTimeout = "REVIEWGUARD_SHUTDOWN_TIMEOUT"
	EnvServiceVersion         = "REVIEWGUARD_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "REVIEWGUARD_DB_HOST",
	Port:            "REVIEWGUARD_DB_PORT",
	Name:            "REVIEWGUARD_DB_NAME",
	User:            "REVIEWGUARD_DB_USER",
	Password:        "REVIEWGUARD_DB_PASSWORD",
	SSLMode:         "REVIEWGUARD_DB_SSL_MODE",
	ApplicationName: "REVIEWGUARD_DB_APPLICATION_NAME",
	MaxOpenConns:    "REVIEWGUARD_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REVIEWGUARD_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REVIEWGUARD_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REVIEWGUARD_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "REVIEWGUARD_STORAGE_CONTAINER_NAME",
	ConnectionString: "REVIEWGUARD_STORAGE_CONNECTION_STRING",
	MaxListSize:      "REVIEWGUARD_STORAGE_MAX_LIST_SIZE",
	MaxRetries:       "REVIEWGUARD_STORAGE_MAX_RETRIES",
}

var classifierEnv = &classifier.Env{
	Provider: "REVIEWGUARD_CLASSIFIER_PROVIDER",
	Command:  "REVIEWGUARD_CLASSIFIER_COMMAND",
	Args:     "REVIEWGUARD_CLASSIFIER_ARGS",
	Endpoint: "REVIEWGUARD_CLASSIFIER_ENDPOINT",
	APIKey:   "REVIEWGUARD_CLASSIFIER_API_KEY",
	Model:    "REVIEWGUARD_CLASSIFIER_MODEL",
	BaseURL:  "REVIEWGUARD_CLASSIFIER_BASE_URL",
}

var verdictsEnv = &verdicts.Env{
	Timeout:          "REVIEWGUARD_VERDICTS_TIMEOUT",
	MaxBatch:         "REVIEWGUARD_VERDICTS_MAX_BATCH",
	BatchConcurrency: "REVIEWGUARD_VERDICTS_BATCH_CONCURRENCY",
	Seed:             "REVIEWGUARD_VERDICTS_SYNTHETIC_SEED",
	CacheTTL:         "REVIEWGUARD_VERDICTS_SYNTHETIC_CACHE_TTL",
}

var identityEnv = &identity.Env{
	SigningKey: "REVIEWGUARD_IDENTITY_SIGNING_KEY",
	Issuer:     "REVIEWGUARD_IDENTITY_ISSUER",
	Leeway:     "REVIEWGUARD_IDENTITY_LEEWAY",
	TokenTTL:   "REVIEWGUARD_IDENTITY_TOKEN_TTL",
}

var telemetryEnv = &telemetry.Env{
	LogLevel:    "REVIEWGUARD_LOG_LEVEL",
	LogFormat:   "REVIEWGUARD_LOG_FORMAT",
	SentryDSN:   "REVIEWGUARD_SENTRY_DSN",
	Environment: "REVIEWGUARD_SENTRY_ENVIRONMENT",
	SampleRate:  "REVIEWGUARD_SENTRY_SAMPLE_RATE",
}

var metricsEnv = &metrics.Env{
	Namespace: "REVIEWGUARD_METRICS_NAMESPACE",
	Path:      "REVIEWGUARD_METRICS_PATH",
}

// Config is the root configuration for the ReviewGuard service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	API             APIConfig         `toml:"api"`
	Classifier      classifier.Config `toml:"classifier"`
	Verdicts        verdicts.Config   `toml:"verdicts"`
	Identity        identity.Config   `toml:"identity"`
	Telemetry       telemetry.Config  `toml:"telemetry"`
	Metrics         metrics.Config    `toml:"metrics"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the REVIEWGUARD_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Classifier.Merge(&overlay.Classifier)
	c.Verdicts.Merge(&overlay.Verdicts)
	c.Identity.Merge(&overlay.Identity)
	c.Telemetry.Merge(&overlay.Telemetry)
	c.Metrics.Merge(&overlay.Metrics)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Verdicts.Finalize(verdictsEnv); err != nil {
		return fmt.Errorf("verdicts: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Telemetry.Finalize(telemetryEnv); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if err := c.Metrics.Finalize(metricsEnv); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
