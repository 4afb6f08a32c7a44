package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the query surface repositories depend on. It is satisfied by
// *pgxpool.Pool, by pgxmock pools in tests and by Conn below.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxBeginner starts top-level transactions. Satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type txKey struct{}

// WithTx returns a context carrying an open transaction. Conn routes every
// query through it, so reads inside a unit-of-work scope observe writes
// staged in the same transaction.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFrom(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// Conn is the pool-backed Database given to repositories.
type Conn struct {
	db Database
}

func New(db Database) *Conn {
	return &Conn{db: db}
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := TxFrom(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return c.db.Query(ctx, sql, args...)
}

func (c *Conn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := TxFrom(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return c.db.QueryRow(ctx, sql, args...)
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := TxFrom(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return c.db.Exec(ctx, sql, args...)
}
