package insights

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/handlers"
	"github.com/JaimeStill/reviewguard/pkg/routes"
)

// Handler provides HTTP endpoints for dashboards.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "insights"),
	}
}

// Routes returns the route group for the caller's dashboard.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/insights",
		Tags:    []string{"Insights"},
		Schemas: Spec.Schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Dashboard, OpenAPI: Spec.Dashboard},
		},
	}
}

// AdminRoutes returns the route group for the cross-owner dashboard.
func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix: "/admin/insights",
		Tags:   []string{"Admin"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.AdminDashboard, OpenAPI: Spec.AdminDashboard},
		},
	}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Authenticated(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	d, err := h.sys.Dashboard(r.Context(), *caller)
	if err != nil {
		handlers.RespondError(w, h.logger, ledger.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	d, err := h.sys.AdminDashboard(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, ledger.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}
