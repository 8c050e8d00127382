package ledger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/reviewguard/pkg/repository"
)

// Domain errors for ledger operations.
var (
	ErrNotFound      = errors.New("verdict not found")
	ErrDuplicate     = errors.New("verdict already exists")
	ErrPersistence   = errors.New("verdict persistence failed")
	ErrOwnerRequired = errors.New("owner required to record verdict")
	ErrInvalidRecord = errors.New("verdict rejected by ledger constraints")
)

var dbErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Invalid:   ErrInvalidRecord,
}

// MapHTTPStatus maps ledger domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrOwnerRequired) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidRecord) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// persistence reports a store failure, preferring a mapped domain error
// over the generic ErrPersistence.
func persistence(op string, err error) error {
	if mapped := dbErrors.Map(err); mapped != err {
		return fmt.Errorf("%s: %w", op, mapped)
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
