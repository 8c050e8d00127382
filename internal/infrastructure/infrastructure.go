// Package infrastructure builds the shared systems every domain module
// depends on: logging, the ledger database, export storage, metrics, and
// error reporting.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/pkg/database"
	"github.com/JaimeStill/reviewguard/pkg/lifecycle"
	"github.com/JaimeStill/reviewguard/pkg/metrics"
	"github.com/JaimeStill/reviewguard/pkg/storage"
	"github.com/JaimeStill/reviewguard/pkg/telemetry"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *metrics.System
	Reporter  telemetry.Reporter
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start
// separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter behaves like New with the log output directed to w.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := telemetry.NewLogger(&cfg.Telemetry, w)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	reporter, err := telemetry.NewReporter(&cfg.Telemetry, cfg.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Metrics:   metrics.New(&cfg.Metrics, logger),
		Reporter:  reporter,
	}, nil
}

type starter interface {
	Start(lc *lifecycle.Coordinator) error
}

// Start registers each system's readiness checks and shutdown hooks with
// the lifecycle coordinator, in dependency order.
func (i *Infrastructure) Start() error {
	systems := []struct {
		name string
		sys  starter
	}{
		{"database", i.Database},
		{"storage", i.Storage},
		{"telemetry", i.Reporter},
	}

	for _, s := range systems {
		if err := s.sys.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start failed: %w", s.name, err)
		}
	}
	return nil
}
