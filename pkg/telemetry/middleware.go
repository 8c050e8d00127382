package telemetry

import (
	"fmt"
	"net/http"
)

// CaptureServerErrors reports every response with a 5xx status to r.
// Panics are captured and re-raised.
func CaptureServerErrors(r Reporter, module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			tags := map[string]string{
				"module": module,
				"method": req.Method,
				"path":   req.URL.Path,
			}

			defer func() {
				if p := recover(); p != nil {
					r.Capture(fmt.Errorf("panic: %v", p), tags)
					panic(p)
				}
			}()

			next.ServeHTTP(rec, req)

			if rec.status >= http.StatusInternalServerError {
				r.Capture(
					fmt.Errorf("%s %s responded %d", req.Method, req.URL.Path, rec.status),
					tags,
				)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
