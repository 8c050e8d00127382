package aggregate

import (
	"time"

	"github.com/JaimeStill/reviewguard/internal/ledger"
)

// Dashboard is the statistics view over one owner's records, or over all
// records for the admin view.
type Dashboard struct {
	Summary      Summary       `json:"summary"`
	TextReviews  Summary       `json:"textReviews"`
	ProductScans Summary       `json:"productScans"`
	Series       []DayCount    `json:"series"`
	Trend        []TrendPoint  `json:"confidenceTrend"`
	Ratings      []RatingCount `json:"ratingDistribution"`
	Badges       []Badge       `json:"badges"`
}

// AdminDashboard extends Dashboard with cross-owner statistics.
type AdminDashboard struct {
	Dashboard
	TopOwners    []OwnerCount `json:"topUsers"`
	ActionsTaken int          `json:"actionsTaken"`
}

// BuildDashboard computes every dashboard statistic for records as of now.
func BuildDashboard(records []ledger.Record, now time.Time) Dashboard {
	summary := Summarize(records)
	text, scans := Partition(records)

	return Dashboard{
		Summary:      summary,
		TextReviews:  Summarize(text),
		ProductScans: Summarize(scans),
		Series:       TrailingSeries(records, now, DefaultWindowDays),
		Trend:        ConfidenceTrend(records, DefaultTrendSize),
		Ratings:      RatingDistribution(records),
		Badges:       EvaluateBadges(summary),
	}
}

// BuildAdminDashboard computes the dashboard plus top owners and the
// estimated action count.
func BuildAdminDashboard(records []ledger.Record, now time.Time) AdminDashboard {
	d := BuildDashboard(records, now)

	return AdminDashboard{
		Dashboard:    d,
		TopOwners:    TopOwners(records, DefaultTopOwners),
		ActionsTaken: ActionsTaken(d.Summary.Total),
	}
}
