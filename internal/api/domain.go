package api

import (
	"fmt"

	"github.com/JaimeStill/reviewguard/internal/exports"
	"github.com/JaimeStill/reviewguard/internal/insights"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/internal/verdicts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Ledger   ledger.System
	Verdicts verdicts.System
	Insights insights.System
	Exports  exports.System
}

// NewDomain creates all domain systems from the API runtime. Verdict
// metrics are registered with the runtime's metrics system.
func NewDomain(runtime *Runtime, cfg *verdicts.Config) (*Domain, error) {
	ledgerSystem := ledger.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	verdictMetrics := verdicts.NewMetrics(runtime.Metrics.Namespace())
	if err := runtime.Metrics.Register(verdictMetrics); err != nil {
		return nil, fmt.Errorf("register verdict metrics: %w", err)
	}

	verdictsSystem := verdicts.New(
		verdicts.NewClassifierSource(runtime.Classifier, cfg.TimeoutDuration()),
		verdicts.NewSyntheticURLSource(
			verdicts.NewSeededRand(cfg.Synthetic.Seed),
			cfg.CacheTTLDuration(),
		),
		ledgerSystem,
		cfg,
		verdictMetrics,
		runtime.Reporter,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Ledger:   ledgerSystem,
		Verdicts: verdictsSystem,
		Insights: insights.New(ledgerSystem, runtime.Logger),
		Exports:  exports.New(ledgerSystem, runtime.Storage, runtime.Logger),
	}, nil
}
