package telemetry

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
)

func NewSentryReporter(opts sentry.ClientOptions, logger *slog.Logger) (Reporter, error) {
	return newSentryReporter(opts, logger)
}
