// Package handlers provides shared HTTP response helpers for domain handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

var (
	// ErrInvalidBody indicates a request body that could not be decoded as JSON.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrBodyTooLarge indicates a request body over the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as a JSON error response.
// Server errors log at Error level, client errors at Warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// DecodeJSON decodes a single JSON value from the request body into v,
// limiting the body to maxBytes when positive. Unknown fields are ignored.
// Trailing data after the value is rejected. Returns ErrBodyTooLarge when
// the limit is exceeded and ErrInvalidBody otherwise, wrapping the cause.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return decodeError(err)
	}
	return nil
}

// DecodeStatus maps a DecodeJSON error to its HTTP status.
func DecodeStatus(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Join(ErrBodyTooLarge, err)
	}
	return errors.Join(ErrInvalidBody, err)
}
