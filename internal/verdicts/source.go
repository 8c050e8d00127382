package verdicts

import (
	"context"
	"time"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

// Outcome is what a Source produces before augmentation.
type Outcome struct {
	Result classifier.Result
	Scan   *Scan
}

// Source produces a raw verdict for a submission. Text reviews and product
// URLs are scored by different sources behind this contract.
type Source interface {
	Name() string
	Score(ctx context.Context, sub Submission) (Outcome, error)
}

// ClassifierSource scores review text with a classifier, bounding each call
// by a timeout.
type ClassifierSource struct {
	classifier classifier.Classifier
	timeout    time.Duration
}

// NewClassifierSource wraps c. A non-positive timeout leaves the caller's
// context as the only bound.
func NewClassifierSource(c classifier.Classifier, timeout time.Duration) *ClassifierSource {
	return &ClassifierSource{classifier: c, timeout: timeout}
}

func (s *ClassifierSource) Name() string {
	return s.classifier.Name()
}

func (s *ClassifierSource) Score(ctx context.Context, sub Submission) (Outcome, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.classifier.Classify(ctx, sub.Text)
	if err != nil {
		return Outcome{}, err
	}

	if err := classifier.Validate(result); err != nil {
		return Outcome{}, err
	}

	return Outcome{Result: result}, nil
}
