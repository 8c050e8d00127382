package classifier_test

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  classifier.Result
		wantErr bool
	}{
		{"fake in range", classifier.Result{Prediction: classifier.Fake, Confidence: 0.8}, false},
		{"real lower bound", classifier.Result{Prediction: classifier.Real, Confidence: 0}, false},
		{"upper bound", classifier.Result{Prediction: classifier.Real, Confidence: 1}, false},
		{"unknown label", classifier.Result{Prediction: "Maybe", Confidence: 0.5}, true},
		{"empty label", classifier.Result{Confidence: 0.5}, true},
		{"above one", classifier.Result{Prediction: classifier.Fake, Confidence: 1.01}, true},
		{"negative", classifier.Result{Prediction: classifier.Fake, Confidence: -0.1}, true},
		{"nan", classifier.Result{Prediction: classifier.Fake, Confidence: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifier.Validate(tt.result)
			if tt.wantErr {
				assert.ErrorIs(t, err, classifier.ErrInvalidOutput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unavailable", classifier.ErrUnavailable, http.StatusServiceUnavailable},
		{"invalid output", classifier.ErrInvalidOutput, http.StatusBadGateway},
		{"wrapped unavailable", errors.Join(errors.New("ctx"), classifier.ErrUnavailable), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.MapHTTPStatus(tt.err))
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults to process provider", func(t *testing.T) {
		var cfg classifier.Config
		require.NoError(t, cfg.Finalize(nil))

		assert.Equal(t, classifier.ProviderProcess, cfg.Provider)
		assert.Equal(t, "python3", cfg.Command)
		assert.Equal(t, []string{"ml_bridge.py"}, cfg.Args)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_CLASSIFIER_PROVIDER", "http")
		t.Setenv("TEST_CLASSIFIER_ENDPOINT", "http://model:8000/predict")
		t.Setenv("TEST_CLASSIFIER_ARGS", "bridge.py --quiet")

		cfg := classifier.Config{}
		err := cfg.Finalize(&classifier.Env{
			Provider: "TEST_CLASSIFIER_PROVIDER",
			Endpoint: "TEST_CLASSIFIER_ENDPOINT",
			Args:     "TEST_CLASSIFIER_ARGS",
		})
		require.NoError(t, err)

		assert.Equal(t, classifier.ProviderHTTP, cfg.Provider)
		assert.Equal(t, "http://model:8000/predict", cfg.Endpoint)
		assert.Equal(t, []string{"bridge.py", "--quiet"}, cfg.Args)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			cfg  classifier.Config
		}{
			{"http without endpoint", classifier.Config{Provider: classifier.ProviderHTTP}},
			{"openai without key", classifier.Config{Provider: classifier.ProviderOpenAI}},
			{"unknown provider", classifier.Config{Provider: "grpc"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Error(t, tt.cfg.Finalize(nil))
			})
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := classifier.Config{Provider: classifier.ProviderProcess, Command: "python3", Model: "gpt-4o-mini"}
	base.Merge(&classifier.Config{Provider: classifier.ProviderOpenAI, APIKey: "sk-test"})

	assert.Equal(t, classifier.ProviderOpenAI, base.Provider)
	assert.Equal(t, "python3", base.Command)
	assert.Equal(t, "sk-test", base.APIKey)
	assert.Equal(t, "gpt-4o-mini", base.Model)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  classifier.Config
	}{
		{classifier.ProviderProcess, classifier.Config{Provider: classifier.ProviderProcess, Command: "python3"}},
		{classifier.ProviderHTTP, classifier.Config{Provider: classifier.ProviderHTTP, Endpoint: "http://localhost"}},
		{classifier.ProviderOpenAI, classifier.Config{Provider: classifier.ProviderOpenAI, APIKey: "sk", Model: "gpt-4o-mini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := classifier.New(tt.cfg, discardLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name())
		})
	}

	_, err := classifier.New(classifier.Config{Provider: "carrier-pigeon"}, discardLogger())
	assert.ErrorIs(t, err, classifier.ErrUnknownProvider)
}
