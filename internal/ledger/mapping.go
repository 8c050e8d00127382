package ledger

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/pkg/query"
	"github.com/JaimeStill/reviewguard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "verdicts", "v").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("source_text", "SourceText").
	Project("product_name", "ProductName").
	Project("product_url", "ProductURL").
	Project("reviewer_name", "ReviewerName").
	Project("rating", "Rating").
	Project("review_date", "ReviewDate").
	Project("verified_purchase", "VerifiedPurchase").
	Project("is_url_analysis", "IsURLAnalysis").
	Project("prediction", "Prediction").
	Project("confidence", "Confidence").
	Project("detection_reasons", "DetectionReasons").
	Project("created_at", "CreatedAt").
	Join("public", "owners", "o", "LEFT JOIN", "o.id = v.owner_id").
	ProjectExpr("COALESCE(o.display_name, '')", "OwnerName")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var searchFields = []string{"SourceText", "ProductName", "ReviewerName"}

// Filters contains optional filtering criteria for ledger searches.
// Nil fields are ignored. Prediction, IsURLAnalysis, and OwnerID use exact
// matching; ProductName and OwnerName use case-insensitive contains matching.
type Filters struct {
	Prediction    *string `json:"prediction,omitempty"`
	IsURLAnalysis *bool   `json:"isUrlAnalysis,omitempty"`
	OwnerID       *string `json:"ownerId,omitempty"`
	OwnerName     *string `json:"ownerName,omitempty"`
	ProductName   *string `json:"productName,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Prediction", f.Prediction).
		WhereEquals("IsURLAnalysis", f.IsURLAnalysis).
		WhereEquals("OwnerID", f.OwnerID).
		WhereContains("OwnerName", f.OwnerName).
		WhereContains("ProductName", f.ProductName)
}

// Match reports whether r satisfies every non-nil filter.
func (f Filters) Match(r Record) bool {
	if f.Prediction != nil && string(r.Prediction) != *f.Prediction {
		return false
	}
	if f.IsURLAnalysis != nil && r.IsURLAnalysis != *f.IsURLAnalysis {
		return false
	}
	if f.OwnerID != nil && r.OwnerID != *f.OwnerID {
		return false
	}
	if f.OwnerName != nil && *f.OwnerName != "" && !containsFold(r.OwnerName, *f.OwnerName) {
		return false
	}
	if f.ProductName != nil && *f.ProductName != "" && !containsFold(r.ProductName, *f.ProductName) {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
// kind accepts "url" (product scans) or "text" (text reviews).
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("prediction"); p != "" {
		if pred := classifier.Prediction(p); pred.Valid() {
			f.Prediction = &p
		}
	}

	switch values.Get("kind") {
	case "url":
		v := true
		f.IsURLAnalysis = &v
	case "text":
		v := false
		f.IsURLAnalysis = &v
	}

	if o := values.Get("owner"); o != "" {
		f.OwnerID = &o
	}

	if on := values.Get("ownerName"); on != "" {
		f.OwnerName = &on
	}

	if pn := values.Get("product"); pn != "" {
		f.ProductName = &pn
	}

	return f
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var prediction string
	var reasonsRaw []byte

	err := s.Scan(
		&r.ID,
		&r.OwnerID,
		&r.SourceText,
		&r.ProductName,
		&r.ProductURL,
		&r.ReviewerName,
		&r.Rating,
		&r.ReviewDate,
		&r.VerifiedPurchase,
		&r.IsURLAnalysis,
		&prediction,
		&r.Confidence,
		&reasonsRaw,
		&r.CreatedAt,
		&r.OwnerName,
	)

	if err != nil {
		return r, err
	}

	r.Prediction = classifier.Prediction(prediction)

	if len(reasonsRaw) > 0 {
		if err := json.Unmarshal(reasonsRaw, &r.DetectionReasons); err != nil {
			return r, fmt.Errorf("unmarshal detection_reasons: %w", err)
		}
	}

	if r.DetectionReasons == nil {
		r.DetectionReasons = []string{}
	}

	return r, nil
}
