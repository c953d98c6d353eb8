package repomanager

import (
	"context"
	"database/sql"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/dbx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/legacyaccounts"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/umbrellaaccounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	UmbrellaAccounts(db dbx.DBTX) umbrellaaccounts.Repository
	LegacyAccounts(db dbx.DBTX) legacyaccounts.Repository
}
