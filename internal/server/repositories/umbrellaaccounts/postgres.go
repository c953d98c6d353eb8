// Package umbrellaaccounts persists battle.net (umbrella) accounts in the
// battlenet_accounts table.
package umbrellaaccounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/dbx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
)

// PostgresRepository works against any database/sql handle whose driver
// understands $N placeholders (pgx and modernc sqlite both do).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM battlenet_accounts WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// MaxID returns the highest assigned id, or 0 when the table is empty.
func (r *PostgresRepository) MaxID(ctx context.Context) (int64, error) {
	query :=
		`SELECT COALESCE(MAX(id), 0) FROM battlenet_accounts`

	var id int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// Create inserts the account with its pre-assigned id. A clash on email
// yields common.ErrDuplicateEmail, a clash on id common.ErrDuplicateID.
func (r *PostgresRepository) Create(ctx context.Context, account *models.UmbrellaAccount) error {
	query :=
		`INSERT INTO battlenet_accounts (id, email, sha_pass_hash, joindate)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.JoinDate)

	if err != nil {
		if target, ok := dbx.UniqueViolation(err); ok {
			if strings.Contains(target, "email") {
				return fmt.Errorf("db error: %w: %w", common.ErrDuplicateEmail, err)
			}
			return fmt.Errorf("db error: %w: %w", common.ErrDuplicateID, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.UmbrellaAccount, error) {
	query :=
		`SELECT id, email, sha_pass_hash, joindate FROM battlenet_accounts
		 WHERE email = $1
		 `

	account := &models.UmbrellaAccount{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.JoinDate)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.JoinDate = models.NormalizeJoinDate(account.JoinDate)
	return account, nil
}
