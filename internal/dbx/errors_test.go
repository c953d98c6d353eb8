package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505", ConstraintName: "battlenet_accounts_email_key"})

	target, ok := UniqueViolation(err)
	require.True(t, ok)
	assert.Equal(t, "battlenet_accounts_email_key", target)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "account_battlenet_account_fkey"})
	assert.False(t, ok, "foreign key violation is not a unique violation")
}

func TestUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`CREATE TABLE u (id BIGINT NOT NULL PRIMARY KEY, email TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO u (id, email) VALUES (1, 'A')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO u (id, email) VALUES (2, 'A')`)
	target, ok := UniqueViolation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "u.email", target)

	_, err = db.Exec(`INSERT INTO u (id, email) VALUES (1, 'B')`)
	target, ok = UniqueViolation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "u.id", target)
}

func TestUniqueViolation_Other(t *testing.T) {
	_, ok := UniqueViolation(nil)
	assert.False(t, ok)
	_, ok = UniqueViolation(errors.New("duplicate key"))
	assert.False(t, ok)
	_, ok = UniqueViolation(sql.ErrNoRows)
	assert.False(t, ok)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, IsSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsSerializationFailure(context.Canceled))
}
