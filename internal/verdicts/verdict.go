// Package verdicts scores review submissions. It chooses a verdict source,
// augments the raw reasons with metadata heuristics, and records the result
// in the ledger when the caller is authenticated.
package verdicts

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

// Sentiment is the synthetic sentiment split for a product scan, in percent.
type Sentiment struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Scan carries product-level detail produced for URL analysis.
type Scan struct {
	ProductName  string    `json:"productName"`
	TotalReviews int       `json:"totalReviews"`
	Sentiment    Sentiment `json:"sentiment"`
}

// Verdict is the response for one scored submission. Error is always null
// on success; ID is set only when the verdict was recorded.
type Verdict struct {
	Prediction classifier.Prediction `json:"prediction"`
	Confidence float64               `json:"confidence"`
	Reasons    []string              `json:"reasons"`
	Error      *string               `json:"error"`
	ID         *uuid.UUID            `json:"id,omitempty"`
	Scan       *Scan                 `json:"scan,omitempty"`
}

// BatchResult reports the outcome of one submission within a batch.
// On success, Verdict is populated and Error is empty.
type BatchResult struct {
	Index   int      `json:"index"`
	Status  int      `json:"status"`
	Verdict *Verdict `json:"verdict,omitempty"`
	Error   string   `json:"error,omitempty"`
}
