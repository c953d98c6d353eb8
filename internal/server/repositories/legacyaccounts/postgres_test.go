package legacyaccounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+account\s*\(id,\s*username,\s*sha_pass_hash,\s*email,\s*reg_mail,\s*joindate,\s*battlenet_account,\s*battlenet_index\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*$`
	getQuery    = `(?s)^SELECT\s+id,\s*username,\s*sha_pass_hash,\s*email,\s*reg_mail,\s*joindate,\s*battlenet_account,\s*battlenet_index\s+FROM\s+account\s+WHERE\s+username\s*=\s*\$1\s*$`
)

func sampleAccount(joined time.Time) *models.LegacyAccount {
	return &models.LegacyAccount{
		ID:                   3,
		Username:             "3#1",
		PasswordHash:         "FFFF",
		Email:                "USER@EXAMPLE.COM",
		RegMail:              "USER@EXAMPLE.COM",
		JoinDate:             joined,
		UmbrellaAccountID:    3,
		UmbrellaAccountIndex: 1,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	joined := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(insertQuery).
		WithArgs(int64(3), "3#1", "FFFF", "USER@EXAMPLE.COM", "USER@EXAMPLE.COM", joined, int64(3), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), sampleAccount(joined)); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"})

	err := repo.Create(context.Background(), sampleAccount(time.Now()))
	if !errors.Is(err, common.ErrDuplicateID) {
		t.Fatalf("want ErrDuplicateID, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("db err"))

	err := repo.Create(context.Background(), sampleAccount(time.Now()))
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	joined := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(getQuery).
		WithArgs("3#1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "sha_pass_hash", "email", "reg_mail", "joindate", "battlenet_account", "battlenet_index"}).
			AddRow(int64(3), "3#1", "FFFF", "USER@EXAMPLE.COM", "USER@EXAMPLE.COM", joined, int64(3), int64(1)))

	got, err := repo.GetByUsername(context.Background(), "3#1")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if !got.JoinDate.Equal(joined) {
		t.Fatalf("unexpected join date: %v", got.JoinDate)
	}
	got.JoinDate = joined
	if want := sampleAccount(joined); *got != *want {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("9#1").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "9#1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
