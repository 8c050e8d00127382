package classifier

import (
	"fmt"
	"log/slog"
)

// New builds the provider selected by cfg. cfg must already be finalized.
func New(cfg Config, logger *slog.Logger) (Classifier, error) {
	switch cfg.Provider {
	case ProviderProcess:
		return NewProcess(cfg.Command, cfg.Args, logger), nil
	case ProviderHTTP:
		return NewHTTP(cfg.Endpoint, cfg.APIKey, nil, logger), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
