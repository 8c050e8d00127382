package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Errors names the domain errors a store reports for common database
// failures. A nil field leaves that failure unmapped.
type Errors struct {
	NotFound  error
	Duplicate error
	// Invalid covers check and foreign-key violations.
	Invalid error
}

// Map wraps err with the matching domain error so that both remain visible
// to errors.Is. Unrecognized errors are returned unchanged.
func (e Errors) Map(err error) error {
	if err == nil {
		return nil
	}

	var (
		domain error
		pgErr  *pgconn.PgError
	)
	if errors.Is(err, sql.ErrNoRows) {
		domain = e.NotFound
	} else if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			domain = e.Duplicate
		case codeForeignKeyViolation, codeCheckViolation:
			domain = e.Invalid
		}
	}

	if domain == nil {
		return err
	}
	return fmt.Errorf("%w: %w", domain, err)
}
