package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the query surface repositories run against. *pgxpool.Pool,
// pgx.Tx and pgxmock pools all satisfy it, so the same repository works
// inside and outside a transaction.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter is a Database that can open transactions. Services that need a
// unit of work depend on this instead of the pool type directly.
type TxStarter interface {
	Database
	Begin(ctx context.Context) (pgx.Tx, error)
}
