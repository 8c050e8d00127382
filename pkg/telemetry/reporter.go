package telemetry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/JaimeStill/reviewguard/pkg/lifecycle"
)

const flushTimeout = 2 * time.Second

// Reporter forwards errors that were handled locally but should not go unnoticed.
type Reporter interface {
	Capture(err error, tags map[string]string)
	Start(lc *lifecycle.Coordinator) error
}

// NewReporter returns a Sentry-backed reporter when a DSN is configured,
// or a reporter that discards everything otherwise.
func NewReporter(cfg *Config, release string, logger *slog.Logger) (Reporter, error) {
	if cfg.SentryDSN == "" {
		return Nop(), nil
	}

	return newSentryReporter(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "reviewguard@" + release,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	}, logger)
}

func newSentryReporter(opts sentry.ClientOptions, logger *slog.Logger) (*sentryReporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create sentry client: %w", err)
	}

	return &sentryReporter{
		hub:    sentry.NewHub(client, sentry.NewScope()),
		logger: logger.With("system", "telemetry"),
	}, nil
}

type sentryReporter struct {
	hub    *sentry.Hub
	logger *slog.Logger
}

// Capture reports err on a clone of the shared hub so concurrent captures
// never share a scope.
func (r *sentryReporter) Capture(err error, tags map[string]string) {
	hub := r.hub.Clone()
	hub.Scope().SetTags(tags)
	hub.CaptureException(err)
}

func (r *sentryReporter) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("error reporting enabled")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if !r.hub.Flush(flushTimeout) {
			r.logger.Warn("sentry flush timed out")
		}
	})

	return nil
}

type nop struct{}

// Nop returns a Reporter that discards captured errors.
func Nop() Reporter {
	return nop{}
}

func (nop) Capture(error, map[string]string)   {}
func (nop) Start(*lifecycle.Coordinator) error { return nil }
