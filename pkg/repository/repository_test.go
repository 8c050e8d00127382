package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/reviewguard/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
	errInvalid   = errors.New("invalid")
)

type result struct {
	rows int64
	err  error
}

func (r result) LastInsertId() (int64, error) { return 0, nil }
func (r result) RowsAffected() (int64, error) { return r.rows, r.err }

type executor struct {
	res   sql.Result
	err   error
	query string
	args  []any
}

func (e *executor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.query = query
	e.args = args
	return e.res, e.err
}

func TestErrorsMap(t *testing.T) {
	other := errors.New("some other error")
	mapping := repository.Errors{NotFound: errNotFound, Duplicate: errDuplicate, Invalid: errInvalid}

	tests := []struct {
		name string
		m    repository.Errors
		err  error
		want error
	}{
		{"nil", mapping, nil, nil},
		{"no rows", mapping, sql.ErrNoRows, errNotFound},
		{"wrapped no rows", mapping, fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", mapping, &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", mapping, &pgconn.PgError{Code: "23503"}, errInvalid},
		{"check violation", mapping, &pgconn.PgError{Code: "23514"}, errInvalid},
		{"unmapped pg error", mapping, &pgconn.PgError{Code: "40001"}, nil},
		{"passthrough", mapping, other, other},
		{"nil field leaves unmapped", repository.Errors{}, sql.ErrNoRows, sql.ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Map(tt.err)
			switch {
			case tt.err == nil:
				if got != nil {
					t.Errorf("Map(nil) = %v", got)
				}
			case tt.want == nil:
				if got != tt.err {
					t.Errorf("Map(%v) = %v, want unchanged", tt.err, got)
				}
			default:
				if !errors.Is(got, tt.want) {
					t.Errorf("Map(%v) = %v, want %v", tt.err, got, tt.want)
				}
				if !errors.Is(got, tt.err) {
					t.Errorf("Map(%v) lost the original error", tt.err)
				}
			}
		})
	}
}

func TestExecAffected(t *testing.T) {
	e := &executor{res: result{rows: 0}}

	n, err := repository.ExecAffected(context.Background(), e, "DELETE FROM verdicts WHERE id = $1", "abc")
	if err != nil {
		t.Fatalf("ExecAffected() error = %v", err)
	}
	if n != 0 {
		t.Errorf("rows = %d, want 0", n)
	}
	if len(e.args) != 1 || e.args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", e.args)
	}
}

func TestExecAffectedPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	e := &executor{err: boom}

	if _, err := repository.ExecAffected(context.Background(), e, "DELETE"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
