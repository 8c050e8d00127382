package ledger_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/query"
)

func TestFiltersFromQuery(t *testing.T) {
	f := ledger.FiltersFromQuery(url.Values{
		"prediction": {"Fake"},
		"kind":       {"url"},
		"owner":      {"u1"},
		"product":    {"lamp"},
		"ownerName":  {"ada"},
	})

	if assert.NotNil(t, f.Prediction) {
		assert.Equal(t, "Fake", *f.Prediction)
	}
	if assert.NotNil(t, f.IsURLAnalysis) {
		assert.True(t, *f.IsURLAnalysis)
	}
	if assert.NotNil(t, f.OwnerID) {
		assert.Equal(t, "u1", *f.OwnerID)
	}
	if assert.NotNil(t, f.ProductName) {
		assert.Equal(t, "lamp", *f.ProductName)
	}
	if assert.NotNil(t, f.OwnerName) {
		assert.Equal(t, "ada", *f.OwnerName)
	}

	empty := ledger.FiltersFromQuery(url.Values{"prediction": {"Maybe"}, "kind": {"audio"}})
	assert.Nil(t, empty.Prediction)
	assert.Nil(t, empty.IsURLAnalysis)
	assert.Nil(t, empty.OwnerName)
}

func TestFiltersApplyOwnerName(t *testing.T) {
	projection := query.NewProjectionMap("public", "verdicts", "v").
		Project("id", "ID").
		Join("public", "owners", "o", "LEFT JOIN", "o.id = v.owner_id").
		ProjectExpr("COALESCE(o.display_name, '')", "OwnerName")

	name := "lov"
	sql, args := ledger.Filters{OwnerName: &name}.Apply(query.NewBuilder(projection)).Build()

	assert.Contains(t, sql, "WHERE COALESCE(o.display_name, '') ILIKE $1")
	assert.Equal(t, []any{"%lov%"}, args)
}

func TestFiltersMatch(t *testing.T) {
	rec := ledger.Record{
		OwnerID:     "u1",
		OwnerName:   "Ada Lovelace",
		ProductName: "Wireless Headphones",
		Prediction:  classifier.Fake,
	}

	fake, genuine := "Fake", "Real"
	text := false
	part := "headphones"
	owner, stranger := "LOVE", "grace"

	tests := []struct {
		name    string
		filters ledger.Filters
		want    bool
	}{
		{"no filters", ledger.Filters{}, true},
		{"prediction match", ledger.Filters{Prediction: &fake}, true},
		{"prediction mismatch", ledger.Filters{Prediction: &genuine}, false},
		{"text partition", ledger.Filters{IsURLAnalysis: &text}, true},
		{"product contains fold", ledger.Filters{ProductName: &part}, true},
		{"owner name contains fold", ledger.Filters{OwnerName: &owner}, true},
		{"owner name mismatch", ledger.Filters{OwnerName: &stranger}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Match(rec))
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ledger.MapHTTPStatus(ledger.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, ledger.MapHTTPStatus(ledger.ErrPersistence))
	assert.Equal(t, http.StatusUnauthorized, ledger.MapHTTPStatus(ledger.ErrOwnerRequired))
	assert.Equal(t, http.StatusBadRequest, ledger.MapHTTPStatus(ledger.ErrInvalidRecord))
}
