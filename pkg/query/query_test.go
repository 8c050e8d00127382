package query_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/JaimeStill/reviewguard/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "verdicts", "v").
		Project("id", "ID").
		Project("prediction", "Prediction").
		Project("created_at", "CreatedAt")
}

func joinedProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "verdicts", "v").
		Project("id", "ID").
		Project("owner_id", "OwnerID").
		Join("public", "owners", "o", "LEFT JOIN", "o.id = v.owner_id").
		ProjectExpr("COALESCE(o.display_name, '')", "OwnerName")
}

func ptr(s string) *string { return &s }

func TestProjectionMapTable(t *testing.T) {
	if got, want := testProjection().Table(), "public.verdicts v"; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapFrom(t *testing.T) {
	tests := []struct {
		name string
		p    *query.ProjectionMap
		want string
	}{
		{"no joins", testProjection(), "public.verdicts v"},
		{"left join", joinedProjection(), "public.verdicts v LEFT JOIN public.owners o ON o.id = v.owner_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.From(); got != tt.want {
				t.Errorf("From() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectionMapJoinQualifiesLaterColumns(t *testing.T) {
	p := query.NewProjectionMap("public", "verdicts", "v").
		Project("id", "ID").
		Join("public", "owners", "o", "JOIN", "o.id = v.owner_id").
		Project("display_name", "OwnerName")

	if got := p.Column("ID"); got != "v.id" {
		t.Errorf("Column(ID) = %q, want v.id", got)
	}
	if got := p.Column("OwnerName"); got != "o.display_name" {
		t.Errorf("Column(OwnerName) = %q, want o.display_name", got)
	}
	if got, want := p.Columns(), "v.id, o.display_name"; got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapLookup(t *testing.T) {
	p := testProjection()

	if col, ok := p.Lookup("CreatedAt"); !ok || col != "v.created_at" {
		t.Errorf("Lookup(CreatedAt) = %q, %v", col, ok)
	}
	if _, ok := p.Lookup("unknown"); ok {
		t.Error("Lookup(unknown) reported mapped")
	}
	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Prediction", []query.SortField{{Field: "Prediction"}}},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			"mixed with whitespace",
			" Prediction , -CreatedAt ,",
			[]query.SortField{{Field: "Prediction"}, {Field: "CreatedAt", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	b := query.NewBuilder(joinedProjection(), query.SortField{Field: "ID", Descending: true})
	b.WhereEquals("OwnerID", "owner-1")
	sql, args := b.Build()

	wantSQL := "SELECT v.id, v.owner_id, COALESCE(o.display_name, '') FROM public.verdicts v LEFT JOIN public.owners o ON o.id = v.owner_id WHERE v.owner_id = $1 ORDER BY v.id DESC"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "owner-1" {
		t.Errorf("Build() args = %v, want [owner-1]", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Prediction", "Fake")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v WHERE v.prediction = $1"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 {
		t.Errorf("BuildCount() args = %v", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.WhereContains("Prediction", ptr("ak"))
	sql, args := b.BuildPage(3, 25)

	wantSQL := "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v WHERE v.prediction ILIKE $1 ORDER BY v.created_at DESC LIMIT 25 OFFSET 50"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%ak%" {
		t.Errorf("BuildPage() args = %v", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc-123")

	wantSQL := "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v WHERE v.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v", args)
	}
}

func TestBuilderNilConditionsSkipped(t *testing.T) {
	var owner *string
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Prediction", owner)
	b.WhereContains("Prediction", ptr(""))
	b.WhereSearch(nil, "Prediction")
	sql, args := b.Build()

	if sql != "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearchNumbersParameters(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("ID", "x")
	b.WhereSearch(ptr("fake"), "Prediction", "ID")
	sql, args := b.Build()

	wantSQL := "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v WHERE v.id = $1 AND (v.prediction ILIKE $2 OR v.id ILIKE $3)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 3 || args[1] != "%fake%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderOrderBySkipsUnmappedFields(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.OrderByFields([]query.SortField{
		{Field: "Prediction"},
		{Field: "id; DROP TABLE verdicts"},
	})
	sql, _ := b.Build()

	wantSQL := "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v ORDER BY v.prediction ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderOrderByAllUnmapped(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.OrderByFields([]query.SortField{{Field: "nope"}})
	sql, _ := b.Build()

	if sql != "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v" {
		t.Errorf("sql = %q", sql)
	}
}

func TestBuilderEscapesLikeMetacharacters(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereContains("Prediction", ptr(`100%_off\`))
	_, args := b.Build()

	if len(args) != 1 || args[0] != `%100\%\_off\\%` {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderBuildPageBoundsOffset(t *testing.T) {
	base := "SELECT v.id, v.prediction, v.created_at FROM public.verdicts v"

	tests := []struct {
		name       string
		page, size int
		want       string
	}{
		{"zero page", 0, 10, base + " LIMIT 10 OFFSET 0"},
		{"overflowing page", 1 << 62, 4, fmt.Sprintf("%s LIMIT 4 OFFSET %d", base, math.MaxInt)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(testProjection()).BuildPage(tt.page, tt.size)
			if sql != tt.want {
				t.Errorf("BuildPage() sql = %q, want %q", sql, tt.want)
			}
		})
	}
}
