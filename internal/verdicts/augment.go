package verdicts

import (
	"slices"
	"unicode/utf8"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

// Reasons appended by Augment.
const (
	ReasonShortFiveStar = "Suspiciously short 5-star review"
	ReasonUnverified    = "Unverified Purchase"
	ReasonPatternMatch  = "Pattern matching with known fake reviews"
)

const shortReviewRunes = 50

// AugmentInput is the raw verdict plus the submission metadata the
// heuristics inspect.
type AugmentInput struct {
	Reasons          []string
	Prediction       classifier.Prediction
	Text             string
	Rating           int
	VerifiedPurchase bool
	IsURLAnalysis    bool
}

// Augment returns the raw reasons followed by metadata reasons, in a fixed
// order. Metadata heuristics are skipped for URL analysis. A Fake verdict
// never leaves with an empty list. Duplicates are kept.
func Augment(in AugmentInput) []string {
	reasons := slices.Clone(in.Reasons)
	if reasons == nil {
		reasons = []string{}
	}

	if !in.IsURLAnalysis {
		if in.Rating == 5 && utf8.RuneCountInString(in.Text) < shortReviewRunes {
			reasons = append(reasons, ReasonShortFiveStar)
		}
		if !in.VerifiedPurchase {
			reasons = append(reasons, ReasonUnverified)
		}
	}

	if in.Prediction == classifier.Fake && len(reasons) == 0 {
		reasons = append(reasons, ReasonPatternMatch)
	}

	return reasons
}
