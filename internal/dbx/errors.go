package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

const sqliteUniquePrefix = "UNIQUE constraint failed: "

// UniqueViolation reports whether err is a unique or primary key violation
// and returns what the driver says was violated: the constraint name on
// PostgreSQL (e.g. "battlenet_accounts_email_key"), the column list on SQLite
// (e.g. "battlenet_accounts.email").
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		i := strings.Index(msg, sqliteUniquePrefix)
		switch code := liteErr.Code(); {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && i >= 0:
			// extended result codes disabled
		default:
			return "", false
		}
		if i < 0 {
			return "", true
		}
		target := msg[i+len(sqliteUniquePrefix):]
		if j := strings.Index(target, " ("); j >= 0 {
			target = target[:j]
		}
		return target, true
	}

	return "", false
}

// IsSerializationFailure reports whether err means the transaction lost a
// race with a concurrent one and may succeed if run again.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}

	return false
}
