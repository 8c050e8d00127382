package verdicts

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
)

// Domain errors for verdict operations.
var (
	ErrMalformedSubmission = errors.New("malformed submission")
	ErrBatchTooLarge       = errors.New("batch exceeds maximum size")
)

// MapHTTPStatus maps verdict, classifier, identity, and ledger errors to
// HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMalformedSubmission):
		return http.StatusBadRequest
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, classifier.ErrUnavailable),
		errors.Is(err, classifier.ErrInvalidOutput):
		return classifier.MapHTTPStatus(err)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, identity.ErrUnauthenticated),
		errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, identity.ErrForbidden):
		return identity.MapHTTPStatus(err)
	}
	return ledger.MapHTTPStatus(err)
}
