package metrics_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JaimeStill/reviewguard/pkg/metrics"
)

func newSystem(t *testing.T) *metrics.System {
	t.Helper()
	cfg := &metrics.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return metrics.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     metrics.Config
		wantErr bool
	}{
		{"defaults", metrics.Config{}, false},
		{"custom", metrics.Config{Namespace: "rg_test", Path: "/prom"}, false},
		{"invalid namespace", metrics.Config{Namespace: "bad-name"}, true},
		{"relative path", metrics.Config{Path: "metrics"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("TEST_METRICS_NAMESPACE", "from_env")

	cfg := &metrics.Config{}
	if err := cfg.Finalize(&metrics.Env{Namespace: "TEST_METRICS_NAMESPACE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Namespace != "from_env" {
		t.Errorf("namespace = %q, want from_env", cfg.Namespace)
	}
	if cfg.Path != "/metrics" {
		t.Errorf("path = %q, want /metrics", cfg.Path)
	}
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	sys := newSystem(t)

	m, err := metrics.NewHTTPMetrics(sys, "api")
	if err != nil {
		t.Fatalf("NewHTTPMetrics() error = %v", err)
	}

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/verdicts", "/verdicts", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	if n := testutil.CollectAndCount(m, "reviewguard_http_requests_total"); n != 2 {
		t.Errorf("series = %d, want 2 (200 and 404)", n)
	}
}

func TestHTTPMetricsDuplicateRegistration(t *testing.T) {
	sys := newSystem(t)

	if _, err := metrics.NewHTTPMetrics(sys, "api"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := metrics.NewHTTPMetrics(sys, "api"); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestHandlerExposesRuntimeMetrics(t *testing.T) {
	sys := newSystem(t)

	rec := httptest.NewRecorder()
	sys.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("exposition missing go_goroutines")
	}
}
