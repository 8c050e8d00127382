package identity

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// LegacyTokenHeader is accepted when no Authorization header is present.
const LegacyTokenHeader = "X-Access-Token"

// Middleware attaches the caller identity to the request context when a
// valid token is presented. Rejected tokens are recorded so that
// Authenticated and Admin can report them; the request itself always proceeds.
func Middleware(v *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "identity")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				ctx := withError(r.Context(), fmt.Errorf("%w: %w", ErrUnauthenticated, err))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *id)))
		})
	}
}

// TokenFromRequest extracts a bearer token from Authorization, falling back
// to the legacy header.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.Header.Get(LegacyTokenHeader))
}
