package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/database"
	"github.com/JaimeStill/reviewguard/pkg/telemetry"
)

// withConfig loads the service configuration from the working directory
// and builds a logger that writes to the command's stderr.
func withConfig(cmd *cobra.Command, fn func(*config.Config, *slog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return fn(cfg, telemetry.NewLogger(&cfg.Telemetry, cmd.ErrOrStderr()))
}

// withLedger opens the configured database and hands a Postgres ledger to fn.
func withLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(ledger.System) error) error {
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}
	conn := db.Connection()
	defer conn.Close()

	if err := db.Ping(ctx); err != nil {
		return err
	}

	return fn(ledger.New(conn, logger, cfg.API.Pagination))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
