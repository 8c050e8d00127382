// Package metrics provides a Prometheus registry and HTTP exposition for service collectors.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// System owns the service registry. Domain packages register their collectors against it.
type System struct {
	registry  *prometheus.Registry
	namespace string
	path      string
	logger    *slog.Logger
}

// New creates a registry pre-populated with Go runtime and process collectors.
func New(cfg *Config, logger *slog.Logger) *System {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &System{
		registry:  registry,
		namespace: cfg.Namespace,
		path:      cfg.Path,
		logger:    logger.With("system", "metrics"),
	}
}

// Namespace returns the metric name prefix shared by all service collectors.
func (s *System) Namespace() string {
	return s.namespace
}

// Path returns the exposition route, e.g. /metrics.
func (s *System) Path() string {
	return s.path
}

// Register adds a collector to the registry.
func (s *System) Register(c prometheus.Collector) error {
	return s.registry.Register(c)
}

// Gatherer exposes the registry for tests and custom exporters.
func (s *System) Gatherer() prometheus.Gatherer {
	return s.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (s *System) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
