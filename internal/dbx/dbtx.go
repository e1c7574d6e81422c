// Package dbx holds the small database plumbing the repositories share:
// DBTX, a querying interface satisfied by *sql.DB and *sql.Tx alike, and
// WithTx for running multi-repository writes in one transaction. Services
// pick the handle, repositories just query through it.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the querying subset of database/sql the repositories depend on.
// Pass *sql.DB for single statements or *sql.Tx inside WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn against the transactional handle, and
// commits on success or rolls back on error or panic. Panics are rethrown.
// Token rotation and the admin write paths lean on this to keep their
// multi-table updates atomic:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if err := rm.RefreshTokens(tx).Delete(ctx, old); err != nil {
//	        return err
//	    }
//	    return rm.RefreshTokens(tx).Create(ctx, userID, fresh, ttl)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
