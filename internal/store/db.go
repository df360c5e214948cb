package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the deck and score stores need. A store built on
// a *sql.DB runs each statement on its own; one rebuilt with WithTx joins the
// caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
