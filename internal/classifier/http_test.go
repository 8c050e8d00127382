package classifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

const endpoint = "http://model.local/predict"

func mockClient() (*http.Client, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	return &http.Client{Transport: transport}, transport
}

func TestHTTPClassify(t *testing.T) {
	client, transport := mockClient()

	transport.RegisterResponder(http.MethodPost, endpoint,
		func(req *http.Request) (*http.Response, error) {
			if got := req.Header.Get("Authorization"); got != "Bearer secret" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, ""), nil
			}

			var body map[string]string
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			if body["text"] != "Great value" {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}

			return httpmock.NewStringResponse(http.StatusOK,
				`{"prediction": "Real", "confidence": 0.73, "reasons": []}`), nil
		})

	c := classifier.NewHTTP(endpoint, "secret", client, discardLogger())
	got, err := c.Classify(context.Background(), "Great value")
	require.NoError(t, err)

	assert.Equal(t, classifier.Real, got.Prediction)
	assert.InDelta(t, 0.73, got.Confidence, 1e-9)
	assert.Empty(t, got.Reasons)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestHTTPClassifyResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    classifier.Result
		wantErr error
	}{
		{
			name:   "fenced json",
			status: http.StatusOK,
			body:   "```json\n{\"prediction\": \"Fake\", \"confidence\": 0.6, \"reasons\": [\"Generic wording\"]}\n```",
			want:   classifier.Result{Prediction: classifier.Fake, Confidence: 0.6, Reasons: []string{"Generic wording"}},
		},
		{
			name:   "lowercase prediction",
			status: http.StatusOK,
			body:   `{"prediction": "fake", "confidence": 0.55}`,
			want:   classifier.Result{Prediction: classifier.Fake, Confidence: 0.55},
		},
		{"server error", http.StatusInternalServerError, `oops`, classifier.Result{}, classifier.ErrUnavailable},
		{"error payload", http.StatusOK, `{"error": "Model not found"}`, classifier.Result{}, classifier.ErrUnavailable},
		{"not json", http.StatusOK, `<html>`, classifier.Result{}, classifier.ErrInvalidOutput},
		{"confidence out of range", http.StatusOK, `{"prediction": "Real", "confidence": 7}`, classifier.Result{}, classifier.ErrInvalidOutput},
		{"missing confidence", http.StatusOK, `{"prediction": "Real"}`, classifier.Result{}, classifier.ErrInvalidOutput},
		{"unknown label", http.StatusOK, `{"prediction": "Suspicious", "confidence": 0.5}`, classifier.Result{}, classifier.ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := mockClient()
			transport.RegisterResponder(http.MethodPost, endpoint, httpmock.NewStringResponder(tt.status, tt.body))

			got, err := classifier.NewHTTP(endpoint, "", client, discardLogger()).
				Classify(context.Background(), "review")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClassifyTransportError(t *testing.T) {
	client, transport := mockClient()
	transport.RegisterResponder(http.MethodPost, endpoint, httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := classifier.NewHTTP(endpoint, "", client, discardLogger()).Classify(context.Background(), "review")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestHTTPClassifyDeadline(t *testing.T) {
	client, transport := mockClient()
	transport.RegisterResponder(http.MethodPost, endpoint,
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := classifier.NewHTTP(endpoint, "", client, discardLogger()).Classify(ctx, "review")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
