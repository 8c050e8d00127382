package classifier_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

const helperEnv = "REVIEWGUARD_CLASSIFIER_HELPER"

// TestHelperProcess stands in for the model bridge when re-executed by
// helperClassifier. The review text is the final argument.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	switch os.Args[len(os.Args)-1] {
	case "crash":
		fmt.Fprint(os.Stderr, "model exploded")
		os.Exit(3)
	case "hang":
		time.Sleep(30 * time.Second)
	case "broken":
		fmt.Print("this is not json")
	case "missing-model":
		fmt.Print(`{"error": "Model not found"}`)
	default:
		fmt.Print(`{"prediction": "Fake", "confidence": 0.91, "reasons": ["Excessive superlatives"]}`)
	}
	os.Exit(0)
}

func helperClassifier(t *testing.T) classifier.Classifier {
	t.Helper()
	t.Setenv(helperEnv, "1")
	return classifier.NewProcess(os.Args[0], []string{"-test.run=^TestHelperProcess$", "--"}, discardLogger())
}

func TestProcessClassify(t *testing.T) {
	c := helperClassifier(t)

	got, err := c.Classify(context.Background(), "Best product ever!!!")
	require.NoError(t, err)

	assert.Equal(t, classifier.Fake, got.Prediction)
	assert.InDelta(t, 0.91, got.Confidence, 1e-9)
	assert.Equal(t, []string{"Excessive superlatives"}, got.Reasons)
}

func TestProcessClassifyFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"non-zero exit", "crash", classifier.ErrUnavailable},
		{"error payload", "missing-model", classifier.ErrUnavailable},
		{"unparseable stdout", "broken", classifier.ErrInvalidOutput},
	}

	c := helperClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Classify(context.Background(), tt.text)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProcessClassifyTimeout(t *testing.T) {
	c := helperClassifier(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := c.Classify(ctx, "hang")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcessMissingCommand(t *testing.T) {
	c := classifier.NewProcess("/nonexistent/ml-bridge", nil, discardLogger())

	_, err := c.Classify(context.Background(), "text")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}
