// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// and a helper to run functions inside a transaction.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Beginner opens transactions. *sql.DB satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// ErrBegin wraps failures to open a transaction so callers can tell them
// apart from failures inside fn.
var ErrBegin = errors.New("begin transaction")

// ErrCommit wraps commit failures.
var ErrCommit = errors.New("commit transaction")

// ErrRollback marks an error whose rollback also failed. The error returned
// by fn is still wrapped.
var ErrRollback = errors.New("transaction rollback failed")

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// A failing rollback never hides the error returned by fn: the result still
// wraps it, with the rollback failure added to the message. If ctx is
// cancelled before commit, database/sql has already rolled back and the
// cancellation is returned.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db Beginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBegin, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w: %v (original error: %w)", ErrRollback, rbErr, err)
			}
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w: %w", ErrCommit, ctxErr)
				return
			}
			err = fmt.Errorf("%w: %w", ErrCommit, cerr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
