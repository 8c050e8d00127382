// Package classifier adapts external fake-review models behind a single
// blocking contract. Providers run a local process, call an HTTP endpoint,
// or ask an OpenAI-compatible chat model; every provider reports failures
// through the same two sentinel errors.
package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/JaimeStill/reviewguard/pkg/formatting"
)

// Prediction is the binary label assigned to a review.
type Prediction string

const (
	Fake Prediction = "Fake"
	Real Prediction = "Real"
)

// Valid reports whether p is one of the known labels.
func (p Prediction) Valid() bool {
	return p == Fake || p == Real
}

// Result is the raw classifier output before reason augmentation.
type Result struct {
	Prediction Prediction `json:"prediction"`
	Confidence float64    `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// Classifier scores review text. Implementations must honor ctx cancellation.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (Result, error)
}

// Validate checks the structural shape of a result: a known prediction and
// a confidence within [0, 1].
func Validate(r Result) error {
	if !r.Prediction.Valid() {
		return fmt.Errorf("%w: unknown prediction %q", ErrInvalidOutput, r.Prediction)
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidOutput, r.Confidence)
	}
	return nil
}

type payload struct {
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Error      string   `json:"error"`
}

// decode parses model output shared by every provider. An {"error": ...}
// payload is a model-side failure, not malformed output.
func decode(content string) (Result, error) {
	p, err := formatting.Parse[payload](content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	if p.Error != "" {
		return Result{}, fmt.Errorf("%w: %s", ErrUnavailable, p.Error)
	}

	if p.Confidence == nil {
		return Result{}, fmt.Errorf("%w: missing confidence", ErrInvalidOutput)
	}

	r := Result{
		Prediction: normalizePrediction(p.Prediction),
		Confidence: *p.Confidence,
		Reasons:    p.Reasons,
	}

	if err := Validate(r); err != nil {
		return Result{}, err
	}
	return r, nil
}

func normalizePrediction(s string) Prediction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fake":
		return Fake
	case "real":
		return Real
	}
	return Prediction(s)
}

// unavailable wraps err as ErrUnavailable, preferring the context error
// when the deadline or cancellation caused the failure.
func unavailable(ctx context.Context, provider string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, provider, err)
}
