// Package telemetry builds the service logger and the optional Sentry error reporter.
package telemetry

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates the root service logger writing to w.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
