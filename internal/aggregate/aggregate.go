// Package aggregate derives dashboard statistics from ledger snapshots.
// Every function is pure over its inputs; nothing is cached between calls.
package aggregate

import (
	"math"
	"slices"
	"time"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/ledger"
)

const (
	DefaultWindowDays = 7
	DefaultTopOwners  = 5
	DefaultTrendSize  = 20
	UnknownOwner      = "Unknown"
	dayLayout         = "2006-01-02"
)

// Summary holds totals for a set of records. AvgConfidence is a percentage
// rounded to one decimal place.
type Summary struct {
	Total         int     `json:"total"`
	FakeCount     int     `json:"fakeCount"`
	RealCount     int     `json:"realCount"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// DayCount is the number of records created on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// OwnerCount is the number of records held by one owner.
type OwnerCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RatingCount is the number of records with a given star rating.
type RatingCount struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

// TrendPoint is one record's confidence, as a percentage, on the trend line.
type TrendPoint struct {
	CreatedAt  time.Time `json:"createdAt"`
	Confidence float64   `json:"confidence"`
}

// Summarize counts records by prediction and averages their confidence.
func Summarize(records []ledger.Record) Summary {
	s := Summary{Total: len(records)}
	if s.Total == 0 {
		return s
	}

	var sum float64
	for _, r := range records {
		switch r.Prediction {
		case classifier.Fake:
			s.FakeCount++
		case classifier.Real:
			s.RealCount++
		}
		sum += r.Confidence
	}

	s.AvgConfidence = math.Round(sum/float64(s.Total)*100*10) / 10
	return s
}

// TrailingSeries buckets records into days calendar days ending on now's
// date, oldest first. Days are computed in now's location. Records outside
// the window are ignored.
func TrailingSeries(records []ledger.Record, now time.Time, days int) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}

	loc := now.Location()
	series := make([]DayCount, days)
	index := make(map[string]int, days)

	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for i := range days {
		key := end.AddDate(0, 0, i-(days-1)).Format(dayLayout)
		series[i] = DayCount{Date: key}
		index[key] = i
	}

	for _, r := range records {
		if i, ok := index[r.CreatedAt.In(loc).Format(dayLayout)]; ok {
			series[i].Count++
		}
	}

	return series
}

// TopOwners ranks owners by record count, descending. Ties keep the order
// in which owners were first encountered. At most n entries are returned.
func TopOwners(records []ledger.Record, n int) []OwnerCount {
	var owners []OwnerCount
	index := make(map[string]int)

	for _, r := range records {
		name := r.OwnerName
		if name == "" {
			name = UnknownOwner
		}
		if i, ok := index[name]; ok {
			owners[i].Count++
			continue
		}
		index[name] = len(owners)
		owners = append(owners, OwnerCount{Name: name, Count: 1})
	}

	slices.SortStableFunc(owners, func(a, b OwnerCount) int {
		return b.Count - a.Count
	})

	if n < 0 {
		n = 0
	}
	if len(owners) > n {
		owners = owners[:n]
	}
	if owners == nil {
		owners = []OwnerCount{}
	}
	return owners
}

// ConfidenceTrend returns the confidence of the n most recent records,
// oldest first. Records created at the same instant keep their input order.
func ConfidenceTrend(records []ledger.Record, n int) []TrendPoint {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b ledger.Record) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	n = max(n, 0)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}

	trend := make([]TrendPoint, len(ordered))
	for i, r := range ordered {
		trend[i] = TrendPoint{CreatedAt: r.CreatedAt, Confidence: r.Confidence * 100}
	}
	return trend
}

// ActionsTaken estimates moderation actions as 15% of total, rounded down.
func ActionsTaken(total int) int {
	return total * 15 / 100
}

// RatingDistribution counts records per star rating from 1 to 5.
// Unrated records are excluded.
func RatingDistribution(records []ledger.Record) []RatingCount {
	dist := make([]RatingCount, 5)
	for i := range dist {
		dist[i].Stars = i + 1
	}
	for _, r := range records {
		if r.Rating >= 1 && r.Rating <= 5 {
			dist[r.Rating-1].Count++
		}
	}
	return dist
}

// Partition splits records into text reviews and product scans,
// preserving order.
func Partition(records []ledger.Record) (text, scans []ledger.Record) {
	text = []ledger.Record{}
	scans = []ledger.Record{}
	for _, r := range records {
		if r.IsURLAnalysis {
			scans = append(scans, r)
		} else {
			text = append(text, r)
		}
	}
	return text, scans
}
