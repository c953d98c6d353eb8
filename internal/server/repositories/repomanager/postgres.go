// Package repomanager provides a concrete RepositoryManager wiring together
// repository constructors and database migrations (via goose), and opens the
// database a DSN points at.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/dbx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/filex"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/migrations"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/legacyaccounts"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/umbrellaaccounts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const sqlitePrefix = "sqlite:"

// sqlitePragmas are appended to every SQLite DSN.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"

// PostgresRepositoryManager vends repository implementations and exposes a
// schema migration hook. The same SQL serves PostgreSQL and SQLite; only
// the goose dialect differs.
type PostgresRepositoryManager struct {
	dialect goose.Dialect
}

// UmbrellaAccounts returns an umbrellaaccounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) UmbrellaAccounts(db dbx.DBTX) umbrellaaccounts.Repository {
	return umbrellaaccounts.NewPostgresRepository(db)
}

// LegacyAccounts returns a legacyaccounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) LegacyAccounts(db dbx.DBTX) legacyaccounts.Repository {
	return legacyaccounts.NewPostgresRepository(db)
}

// gooseUp is a seam for testing the goose provider.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// RunMigrations applies the embedded migrations against db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := gooseUp(ctx, m.dialect, db, migrations.Migrations); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{dialect: goose.DialectPostgres}
}

// NewSQLiteRepositoryManager constructs a RepositoryManager for SQLite databases.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{dialect: goose.DialectSQLite3}
}

// Open opens the database dsn points at and returns it with the matching
// manager. "postgres://" and "postgresql://" DSNs use pgx; "sqlite:<path>"
// uses the pure-Go SQLite driver with a single connection.
func Open(dsn string) (*sql.DB, RepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		return db, NewPostgresRepositoryManager(), nil

	case strings.HasPrefix(dsn, sqlitePrefix):
		path := strings.TrimPrefix(dsn, sqlitePrefix)
		if file := sqliteFile(path); file != "" {
			if _, err := filex.EnsureParentDir(file); err != nil {
				return nil, nil, fmt.Errorf("db open error: %w", err)
			}
		}
		db, err := sql.Open("sqlite", SQLiteDSN(path))
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		// one writer at a time; concurrent provisioning queues on the pool
		db.SetMaxOpenConns(1)
		return db, NewSQLiteRepositoryManager(), nil

	default:
		return nil, nil, fmt.Errorf("unsupported database dsn %q: want postgres:// or sqlite:", redactDSN(dsn))
	}
}

// SQLiteDSN appends the connection pragmas to a SQLite path.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + sqlitePragmas
}

// sqliteFile returns the file a SQLite path refers to, or "" for in-memory
// databases.
func sqliteFile(path string) string {
	if strings.Contains(path, "mode=memory") {
		return ""
	}
	path = strings.TrimPrefix(path, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == ":memory:" {
		return ""
	}
	return path
}

func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		return "***" + dsn[i:]
	}
	return dsn
}
