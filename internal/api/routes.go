package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/pkg/openapi"
	"github.com/JaimeStill/reviewguard/pkg/routes"
)

func routeGroups(domain *Domain, cfg *config.Config) []routes.Group {
	verdictsHandler := domain.Verdicts.Handler(cfg.API.MaxBodySizeBytes())
	insightsHandler := domain.Insights.Handler()

	return []routes.Group{
		verdictsHandler.Routes(),
		verdictsHandler.AdminRoutes(),
		insightsHandler.Routes(),
		insightsHandler.AdminRoutes(),
		domain.Exports.Handler(cfg.Storage.MaxListSize).Routes(),
	}
}

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := routeGroups(domain, cfg)
	routes.Register(mux, groups...)

	doc, err := describe(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(doc))

	return nil
}

func describe(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	routes.Describe(spec, "", groups...)

	doc, err := spec.JSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return doc, nil
}
