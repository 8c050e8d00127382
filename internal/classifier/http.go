package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const maxResponseBytes = 1 << 20

type httpClassifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTP returns a Classifier that POSTs {"text": ...} to endpoint.
// A non-empty apiKey is sent as a bearer token. A nil client uses
// http.DefaultClient; request lifetime is bounded by the caller's context.
func NewHTTP(endpoint, apiKey string, client *http.Client, logger *slog.Logger) Classifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
		logger:   logger.With("classifier", ProviderHTTP),
	}
}

func (c *httpClassifier) Name() string { return ProviderHTTP }

func (c *httpClassifier) Classify(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, unavailable(ctx, ProviderHTTP, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, unavailable(ctx, ProviderHTTP, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, unavailable(ctx, ProviderHTTP, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("classifier endpoint returned non-200", "status", resp.StatusCode)
		return Result{}, unavailable(ctx, ProviderHTTP, fmt.Errorf("status %d", resp.StatusCode))
	}

	return decode(string(data))
}
