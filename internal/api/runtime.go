package api

import (
	"fmt"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/infrastructure"
	"github.com/JaimeStill/reviewguard/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific collaborators.
type Runtime struct {
	*infrastructure.Infrastructure
	Classifier classifier.Classifier
	Verifier   *identity.Verifier
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger and the
// configured classifier provider.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	c, err := classifier.New(cfg.Classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("classifier init failed: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Metrics:   infra.Metrics,
			Reporter:  infra.Reporter,
		},
		Classifier: c,
		Verifier:   identity.NewVerifier(&cfg.Identity),
		Pagination: cfg.API.Pagination,
	}, nil
}
