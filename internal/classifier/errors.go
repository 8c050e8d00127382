package classifier

import (
	"errors"
	"net/http"
)

// Classifier errors. ErrUnavailable covers timeouts and process or transport
// failures; ErrInvalidOutput covers responses that cannot be trusted.
var (
	ErrUnavailable     = errors.New("classifier unavailable")
	ErrInvalidOutput   = errors.New("invalid classifier output")
	ErrUnknownProvider = errors.New("unknown classifier provider")
)

// MapHTTPStatus maps classifier errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrInvalidOutput) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
