package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/verdicts"
)

const signingKey = "verdictctl-test-key"

// testEnv isolates config loading from any config.toml on disk and supplies
// the required sections through the environment.
func testEnv(t *testing.T, classifierURL string) {
	t.Helper()
	t.Chdir(t.TempDir())

	t.Setenv("REVIEWGUARD_ENV", "")
	t.Setenv("REVIEWGUARD_DB_NAME", "reviewguard")
	t.Setenv("REVIEWGUARD_DB_USER", "reviewguard")
	t.Setenv("REVIEWGUARD_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("REVIEWGUARD_IDENTITY_SIGNING_KEY", signingKey)
	t.Setenv("REVIEWGUARD_LOG_LEVEL", "error")
	t.Setenv("REVIEWGUARD_CLASSIFIER_PROVIDER", "http")
	t.Setenv("REVIEWGUARD_CLASSIFIER_ENDPOINT", classifierURL)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func classifierServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenCommand(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	out, err := execute(t, "token", "--sub", "alice", "--name", "Alice", "--admin")
	require.NoError(t, err)

	cfg := identity.Config{SigningKey: signingKey}
	require.NoError(t, cfg.Finalize(nil))

	id, err := identity.NewVerifier(&cfg).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", id.OwnerID)
	assert.Equal(t, "Alice", id.Name)
	assert.Equal(t, identity.RoleAdmin, id.Role)
}

func TestTokenCommandRequiresSubject(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestScoreCommandText(t *testing.T) {
	srv := classifierServer(t, `{"prediction":"Real","confidence":0.8,"reasons":[]}`)
	testEnv(t, srv.URL)

	out, err := execute(t, "score", "--rating", "5", "Great item", "--verified=false")
	require.NoError(t, err)

	var v verdicts.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Real", string(v.Prediction))
	assert.Equal(t, 0.8, v.Confidence)
	assert.Equal(t, []string{"Suspiciously short 5-star review", "Unverified Purchase"}, v.Reasons)
	assert.Nil(t, v.ID)
	assert.Nil(t, v.Error)
}

func TestScoreCommandURLIsSeeded(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	args := []string{"score", "--url", "https://site.com/Wireless-Headphones/dp/B001", "--seed", "42"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	var v verdicts.Verdict
	require.NoError(t, json.Unmarshal([]byte(first), &v))
	require.NotNil(t, v.Scan)
	assert.Equal(t, "Wireless Headphones", v.Scan.ProductName)
}

func TestScoreCommandInputValidation(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	_, err := execute(t, "score")
	assert.ErrorContains(t, err, "required")

	_, err = execute(t, "score", "text", "--url", "https://site.com/dp/B001")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestScoreCommandClassifierUnavailable(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	_, err := execute(t, "score", "some review text")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestInsightsCommandFlags(t *testing.T) {
	testEnv(t, "http://127.0.0.1:9/predict")

	tests := []struct {
		name string
		args []string
	}{
		{"neither", []string{"insights"}},
		{"both", []string{"insights", "--owner", "alice", "--admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
