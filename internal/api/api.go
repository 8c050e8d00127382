// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/infrastructure"
	"github.com/JaimeStill/reviewguard/pkg/metrics"
	"github.com/JaimeStill/reviewguard/pkg/middleware"
	"github.com/JaimeStill/reviewguard/pkg/module"
	"github.com/JaimeStill/reviewguard/pkg/telemetry"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}

	domain, err := NewDomain(runtime, &cfg.Verdicts)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	httpMetrics, err := metrics.NewHTTPMetrics(runtime.Metrics, "api")
	if err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(httpMetrics.Middleware)
	m.Use(telemetry.CaptureServerErrors(runtime.Reporter, "api"))
	m.Use(identity.Middleware(runtime.Verifier, runtime.Logger))

	return m, nil
}
