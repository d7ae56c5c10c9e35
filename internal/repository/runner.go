package repository

import (
	"context"

	"github.com/rpattn/roaslytics/internal/db"

	"github.com/jackc/pgx/v5"
)

// TxRunner executes a unit of work against a store. Implementations decide
// the atomicity boundary; the pgx-backed runner scopes it to one
// transaction so every mutation inside fn commits or aborts together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

type pgxRunner struct {
	conn *db.Connection
}

// NewTxRunner wires a transaction runner backed by the database connection.
func NewTxRunner(conn *db.Connection) TxRunner {
	return &pgxRunner{conn: conn}
}

func (r *pgxRunner) InTx(ctx context.Context, fn func(Store) error) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStore(tx))
	})
}
