package main

import (
	"net/http"

	"github.com/JaimeStill/reviewguard/internal/api"
	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/infrastructure"
	"github.com/JaimeStill/reviewguard/pkg/handlers"
	"github.com/JaimeStill/reviewguard/pkg/module"
)

// Modules holds the prefixed modules mounted on the root router.
type Modules struct {
	API *module.Module
}

// NewModules builds every module from the shared infrastructure.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount attaches every module to router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			failed := make(map[string]string)
			for name, err := range infra.Lifecycle.Failures() {
				failed[name] = err.Error()
			}
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not ready",
				"failed": failed,
			})
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	router.HandleNative("GET "+infra.Metrics.Path(), infra.Metrics.Handler().ServeHTTP)

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	handlers.RespondJSON(w, code, map[string]string{"status": status})
}
