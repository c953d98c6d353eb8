// Package legacyaccounts persists game (legacy) accounts in the account table.
package legacyaccounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/dbx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the game account. Every unique key of the table derives
// from the umbrella id, so any clash is reported as common.ErrDuplicateID.
func (r *PostgresRepository) Create(ctx context.Context, account *models.LegacyAccount) error {
	query :=
		`INSERT INTO account (id, username, sha_pass_hash, email, reg_mail, joindate, battlenet_account, battlenet_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.PasswordHash, account.Email, account.RegMail,
		account.JoinDate, account.UmbrellaAccountID, account.UmbrellaAccountIndex)

	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return fmt.Errorf("db error: %w: %w", common.ErrDuplicateID, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.LegacyAccount, error) {
	query :=
		`SELECT id, username, sha_pass_hash, email, reg_mail, joindate, battlenet_account, battlenet_index
		 FROM account
		 WHERE username = $1
		 `

	a := &models.LegacyAccount{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.RegMail,
		&a.JoinDate, &a.UmbrellaAccountID, &a.UmbrellaAccountIndex)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	a.JoinDate = models.NormalizeJoinDate(a.JoinDate)
	return a, nil
}
