// Package ledger persists scored verdicts per owner. It provides the
// record schema, a PostgreSQL-backed ledger, and an in-memory ledger that
// share one contract.
package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

// Default values applied to optional submission fields.
const (
	DefaultProductName  = "Unknown Product"
	DefaultReviewerName = "Anonymous"
)

// Record is one persisted verdict. Records are immutable once appended.
type Record struct {
	ID               uuid.UUID             `json:"id"`
	OwnerID          string                `json:"ownerId"`
	OwnerName        string                `json:"ownerName,omitempty"`
	SourceText       string                `json:"sourceText"`
	ProductName      string                `json:"productName"`
	ProductURL       string                `json:"productUrl"`
	ReviewerName     string                `json:"reviewerName"`
	Rating           int                   `json:"rating"`
	ReviewDate       *time.Time            `json:"reviewDate"`
	VerifiedPurchase bool                  `json:"verifiedPurchase"`
	IsURLAnalysis    bool                  `json:"isUrlAnalysis"`
	Prediction       classifier.Prediction `json:"prediction"`
	Confidence       float64               `json:"confidence"`
	DetectionReasons []string              `json:"detectionReasons"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// AppendCommand carries a scored submission to be recorded for an owner.
// OwnerName refreshes the owner's display name when non-empty.
type AppendCommand struct {
	OwnerID          string
	OwnerName        string
	SourceText       string
	ProductName      string
	ProductURL       string
	ReviewerName     string
	Rating           int
	ReviewDate       *time.Time
	VerifiedPurchase bool
	IsURLAnalysis    bool
	Prediction       classifier.Prediction
	Confidence       float64
	DetectionReasons []string
}

func (c *AppendCommand) normalize() {
	if c.ProductName == "" {
		c.ProductName = DefaultProductName
	}
	if c.ReviewerName == "" {
		c.ReviewerName = DefaultReviewerName
	}
	if c.DetectionReasons == nil {
		c.DetectionReasons = []string{}
	}
}

func (c AppendCommand) record(id uuid.UUID, createdAt time.Time) Record {
	return Record{
		ID:               id,
		OwnerID:          c.OwnerID,
		OwnerName:        c.OwnerName,
		SourceText:       c.SourceText,
		ProductName:      c.ProductName,
		ProductURL:       c.ProductURL,
		ReviewerName:     c.ReviewerName,
		Rating:           c.Rating,
		ReviewDate:       c.ReviewDate,
		VerifiedPurchase: c.VerifiedPurchase,
		IsURLAnalysis:    c.IsURLAnalysis,
		Prediction:       c.Prediction,
		Confidence:       c.Confidence,
		DetectionReasons: slices.Clone(c.DetectionReasons),
		CreatedAt:        createdAt,
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.DetectionReasons = slices.Clone(r.DetectionReasons)
	if r.ReviewDate != nil {
		d := *r.ReviewDate
		r.ReviewDate = &d
	}
	return r
}
