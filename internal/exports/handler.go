package exports

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/handlers"
	"github.com/JaimeStill/reviewguard/pkg/routes"
	"github.com/JaimeStill/reviewguard/pkg/storage"
)

// Handler provides admin HTTP endpoints for ledger exports.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxListSize int32
}

// NewHandler creates a Handler. maxListSize bounds a single list page.
func NewHandler(sys System, logger *slog.Logger, maxListSize int32) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "exports"),
		maxListSize: maxListSize,
	}
}

// Routes returns the route group for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/admin/exports",
		Tags:    []string{"Admin"},
		Schemas: Spec.Schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{name...}", Handler: h.Download, OpenAPI: Spec.Download},
			{Method: "DELETE", Pattern: "/{name...}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Admin(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	export, err := h.sys.Create(r.Context(), *caller)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, export)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	maxResults, err := storage.ParseMaxResults(r.URL.Query().Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), r.URL.Query().Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	name := r.PathValue("name")

	content, err := h.sys.Open(r.Context(), name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	if content.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(content.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content.Body); err != nil {
		h.logger.Warn("export download interrupted", "name", name, "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.Delete(r.Context(), r.PathValue("name")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MapHTTPStatus maps export, storage, and ledger errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidName) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ledger.ErrPersistence) {
		return ledger.MapHTTPStatus(err)
	}
	return storage.MapHTTPStatus(err)
}
