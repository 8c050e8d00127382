package verdicts

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/handlers"
	"github.com/JaimeStill/reviewguard/pkg/pagination"
	"github.com/JaimeStill/reviewguard/pkg/routes"
)

// Handler provides HTTP endpoints for scoring and verdict history.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBatch    int
	maxBodySize int64
}

// BatchRequest is the body of a batch scoring request.
type BatchRequest struct {
	Submissions []Submission `json:"submissions"`
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	ledger.Filters
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, batch limit, and request body limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBatch int,
	maxBodySize int64,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "verdicts"),
		pagination:  pagination,
		maxBatch:    maxBatch,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group for caller-scoped verdict endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/verdicts",
		Tags:    []string{"Verdicts"},
		Schemas: Spec.Schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit, OpenAPI: Spec.Submit},
			{Method: "POST", Pattern: "/batch", Handler: h.SubmitBatch, OpenAPI: Spec.SubmitBatch},
			{Method: "GET", Pattern: "", Handler: h.History, OpenAPI: Spec.History},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

// AdminRoutes returns the route group for cross-owner verdict endpoints.
func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix: "/admin/verdicts",
		Tags:   []string{"Admin"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.AdminHistory, OpenAPI: Spec.AdminHistory},
			{Method: "GET", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "POST", Pattern: "/search", Handler: h.SearchBody, OpenAPI: Spec.SearchBody},
		},
	}
}

// Submit scores one submission. Authenticated callers have the verdict
// recorded; anonymous callers and rejected tokens are scored without history.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := handlers.DecodeJSON(w, r, &sub, h.maxBodySize); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), fmt.Errorf("%w: %w", ErrMalformedSubmission, err))
		return
	}

	owner, _ := identity.FromContext(r.Context())

	v, err := h.sys.Submit(r.Context(), owner, sub)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// SubmitBatch scores up to the configured number of submissions concurrently.
func (h *Handler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := handlers.DecodeJSON(w, r, &req, h.maxBodySize); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), fmt.Errorf("%w: %w", ErrMalformedSubmission, err))
		return
	}

	owner, _ := identity.FromContext(r.Context())

	results, err := h.sys.SubmitBatch(r.Context(), owner, req.Submissions)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

// History returns the caller's verdicts, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Authenticated(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	records, err := h.sys.History(r.Context(), *caller)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Find returns a single verdict owned by the caller, or any verdict for admins.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Authenticated(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: invalid id", ErrMalformedSubmission))
		return
	}

	rec, err := h.sys.Find(r.Context(), *caller, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Delete removes a verdict. Missing ids succeed with 204.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Authenticated(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: invalid id", ErrMalformedSubmission))
		return
	}

	if err := h.sys.Delete(r.Context(), *caller, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminHistory returns every verdict with owner names, newest first.
func (h *Handler) AdminHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	records, err := h.sys.AdminHistory(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Search returns a page of verdicts filtered by query parameters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := ledger.FiltersFromQuery(r.URL.Query())

	result, err := h.sys.Search(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SearchBody accepts a JSON body with pagination and filter criteria.
func (h *Handler) SearchBody(w http.ResponseWriter, r *http.Request) {
	if _, err := identity.Admin(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, identity.MapHTTPStatus(err), err)
		return
	}

	var req SearchRequest
	if err := handlers.DecodeJSON(w, r, &req, h.maxBodySize); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.Search(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
