package identity

import (
	"errors"
	"net/http"
)

// Authentication and authorization errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrInvalidToken    = errors.New("invalid access token")
)

// MapHTTPStatus maps identity errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
