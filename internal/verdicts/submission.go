package verdicts

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
)

// Submission is the request payload for scoring. Optional fields take the
// ledger defaults when empty. Unknown JSON fields are ignored.
type Submission struct {
	Text             string `json:"text"`
	ProductName      string `json:"productName,omitempty"`
	ProductURL       string `json:"productUrl,omitempty"`
	ReviewerName     string `json:"reviewerName,omitempty"`
	Rating           int    `json:"rating,omitempty"`
	ReviewDate       string `json:"reviewDate,omitempty"`
	VerifiedPurchase bool   `json:"verifiedPurchase,omitempty"`
	IsURLAnalysis    bool   `json:"isUrlAnalysis,omitempty"`
}

// Validate reports the first malformed field, wrapped in ErrMalformedSubmission.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrMalformedSubmission)
	}
	if s.Rating < 0 || s.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrMalformedSubmission)
	}
	if _, err := s.ParseReviewDate(); err != nil {
		return err
	}
	return nil
}

// ParseReviewDate accepts YYYY-MM-DD or RFC 3339. An empty value is nil.
func (s Submission) ParseReviewDate() (*time.Time, error) {
	if s.ReviewDate == "" {
		return nil, nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s.ReviewDate); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%w: reviewDate %q is not YYYY-MM-DD or RFC 3339", ErrMalformedSubmission, s.ReviewDate)
}

func (s Submission) appendCommand(owner *identity.Identity, v *Verdict) ledger.AppendCommand {
	reviewDate, _ := s.ParseReviewDate()

	cmd := ledger.AppendCommand{
		OwnerID:          owner.OwnerID,
		OwnerName:        owner.Name,
		SourceText:       s.Text,
		ProductName:      s.ProductName,
		ProductURL:       s.ProductURL,
		ReviewerName:     s.ReviewerName,
		Rating:           s.Rating,
		ReviewDate:       reviewDate,
		VerifiedPurchase: s.VerifiedPurchase,
		IsURLAnalysis:    s.IsURLAnalysis,
		Prediction:       v.Prediction,
		Confidence:       v.Confidence,
		DetectionReasons: v.Reasons,
	}

	if s.IsURLAnalysis {
		if cmd.ProductURL == "" {
			cmd.ProductURL = s.Text
		}
		if cmd.ProductName == "" && v.Scan != nil {
			cmd.ProductName = v.Scan.ProductName
		}
	}

	return cmd
}
