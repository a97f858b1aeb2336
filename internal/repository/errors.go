package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")

	// ErrPendingMigration marks a write that failed because its backing
	// table or column does not exist yet. Handlers turn it into a "run
	// pending migrations" message instead of a generic server error; read
	// paths degrade to empty results instead of returning it.
	ErrPendingMigration = errors.New("schema out of date, run pending migrations")
)

const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

func schemaMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn
	}
	return false
}
