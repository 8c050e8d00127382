package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/reviewguard/pkg/middleware"
)

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"identity", "metrics"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"identity", "metrics", "handler"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func corsConfig(t *testing.T) *middleware.CORSConfig {
	t.Helper()
	cfg := &middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"https://reviews.example"},
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		cfg         func(*testing.T) *middleware.CORSConfig
		method      string
		origin      string
		preflight   bool
		status      int
		allowOrigin string
		allowHeader bool
	}{
		{
			name:   "disabled",
			cfg:    func(*testing.T) *middleware.CORSConfig { return &middleware.CORSConfig{} },
			method: http.MethodGet, origin: "https://reviews.example",
			status: http.StatusOK,
		},
		{
			name:   "allowed origin",
			cfg:    corsConfig,
			method: http.MethodGet, origin: "https://reviews.example",
			status: http.StatusOK, allowOrigin: "https://reviews.example",
		},
		{
			name:   "foreign origin",
			cfg:    corsConfig,
			method: http.MethodGet, origin: "https://elsewhere.example",
			status: http.StatusOK,
		},
		{
			name:   "preflight",
			cfg:    corsConfig,
			method: http.MethodOptions, origin: "https://reviews.example", preflight: true,
			status: http.StatusNoContent, allowOrigin: "https://reviews.example", allowHeader: true,
		},
		{
			name:   "plain options passes through",
			cfg:    corsConfig,
			method: http.MethodOptions, origin: "https://reviews.example",
			status: http.StatusOK, allowOrigin: "https://reviews.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.cfg(t))(okHandler())

			req := httptest.NewRequest(tt.method, "/verdicts", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.allowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.allowOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers") != ""; got != tt.allowHeader {
				t.Errorf("Allow-Headers present = %v, want %v", got, tt.allowHeader)
			}
		})
	}
}

func TestCORSDefaultsIncludeLegacyTokenHeader(t *testing.T) {
	cfg := corsConfig(t)

	found := false
	for _, h := range cfg.AllowedHeaders {
		if h == "X-Access-Token" {
			found = true
		}
	}
	if !found {
		t.Errorf("AllowedHeaders = %v, want X-Access-Token", cfg.AllowedHeaders)
	}
}

func TestCORSConfigEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TEST_CORS_MAX_AGE", "600")

	cfg := &middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
		MaxAge:  "TEST_CORS_MAX_AGE",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled not applied from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://b.example" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", cfg.MaxAge)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := corsConfig(t)
	base.Merge(&middleware.CORSConfig{Enabled: false, Origins: []string{"https://c.example"}})

	if base.Enabled {
		t.Error("Enabled should follow the overlay")
	}
	if base.Origins[0] != "https://c.example" {
		t.Errorf("Origins = %v", base.Origins)
	}
	if base.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want unchanged 3600", base.MaxAge)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, "body")
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/verdicts/history", nil))

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("log = %q, want %s", out, tt.level)
			}
			if !strings.Contains(out, "uri=/verdicts/history") || !strings.Contains(out, "bytes=4") {
				t.Errorf("log missing request detail: %q", out)
			}
		})
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}
