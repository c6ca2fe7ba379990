package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL error codes the service reacts to
const (
	codeQueryCanceled  = "57014"
	codeUndefinedTable = "42P01"
)

// hasCode reports whether err wraps a PgError carrying the given SQLSTATE
func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsQueryCanceled checks if the statement was canceled, typically by statement_timeout
// or a canceled request context.
func IsQueryCanceled(err error) bool {
	return hasCode(err, codeQueryCanceled)
}

// IsUndefinedTable checks if the schema has not been migrated yet
func IsUndefinedTable(err error) bool {
	return hasCode(err, codeUndefinedTable)
}
