package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/clock"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/cryptox"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/dbx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/logging"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/config"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

// retryDelay separates provisioning attempts after a lost id race.
var retryDelay = 20 * time.Millisecond

// AccountService provisions battle.net accounts together with their first
// game account.
type AccountService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	clock        clock.Clock
	minAccountID int64
	maxAttempts  int
	timeout      time.Duration
	txOptions    *sql.TxOptions
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, clk clock.Clock) *AccountService {
	s := &AccountService{
		db:           db,
		repomanager:  m,
		logger:       logger,
		clock:        clk,
		minAccountID: cfg.MinAccountID,
		maxAttempts:  cfg.MaxProvisionAttempts,
		timeout:      cfg.ProvisionTimeout,
	}
	if s.minAccountID < 1 {
		s.minAccountID = 1
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 1
	}
	if cfg.SerializableTx {
		s.txOptions = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return s
}

// CreateAccount validates the signup request and writes the battle.net
// account and its game account "{id}#1" in one transaction. Either both
// rows are committed or neither is.
//
// Every error carries one of the common provisioning kinds:
// ErrInvalidArgument, ErrPolicyViolation, ErrConflict or ErrStorageFailure.
func (s *AccountService) CreateAccount(ctx context.Context, email, password string) (*models.ProvisionedAccount, error) {
	if err := ValidateSignup(email, password); err != nil {
		s.logger.Debug(ctx, "signup rejected", "reason", common.ReasonOf(err))
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	email = cryptox.Upper(email)

	var (
		account *models.ProvisionedAccount
		attempt int
	)

	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), retry.NewConstant(retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		a, err := s.provision(ctx, email, password)
		if err == nil {
			account = a
			return nil
		}
		if lostIDRace(err) {
			s.logger.Warn(ctx, "account id taken by a concurrent signup", "attempt", attempt, "max_attempts", s.maxAttempts)
			return retry.RetryableError(err)
		}
		return err
	})

	if err != nil {
		return nil, s.classify(ctx, err)
	}

	s.logger.Info(ctx, "account created",
		"account_id", account.Umbrella.ID,
		"username", account.Legacy.Username,
		"attempts", attempt)

	return account, nil
}

// provision runs one attempt. email must already be normalized.
func (s *AccountService) provision(ctx context.Context, email, password string) (*models.ProvisionedAccount, error) {
	var result *models.ProvisionedAccount

	err := dbx.WithTx(ctx, s.db, s.txOptions, func(ctx context.Context, tx dbx.DBTX) error {
		umbrellaRepo := s.repomanager.UmbrellaAccounts(tx)
		legacyRepo := s.repomanager.LegacyAccounts(tx)

		exists, err := umbrellaRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return common.Conflict("account exists", nil)
		}

		maxID, err := umbrellaRepo.MaxID(ctx)
		if err != nil {
			return err
		}
		id := max(maxID+1, s.minAccountID)

		joinDate := models.NormalizeJoinDate(s.clock.Now())
		username := models.GameUsername(id, models.GameAccountIndex)

		umbrellaHash, err := cryptox.UmbrellaAccountHash(email, password)
		if err != nil {
			return err
		}
		legacyHash, err := cryptox.LegacyAccountHash(username, password)
		if err != nil {
			return err
		}

		umbrella := &models.UmbrellaAccount{
			ID:           id,
			Email:        email,
			PasswordHash: umbrellaHash,
			JoinDate:     joinDate,
		}
		if err := umbrellaRepo.Create(ctx, umbrella); err != nil {
			return err
		}

		legacy := &models.LegacyAccount{
			ID:                   id,
			Username:             username,
			PasswordHash:         legacyHash,
			Email:                email,
			RegMail:              email,
			JoinDate:             joinDate,
			UmbrellaAccountID:    id,
			UmbrellaAccountIndex: models.GameAccountIndex,
		}
		if err := legacyRepo.Create(ctx, legacy); err != nil {
			return err
		}

		result = &models.ProvisionedAccount{Umbrella: umbrella, Legacy: legacy}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func lostIDRace(err error) bool {
	return errors.Is(err, common.ErrDuplicateID) || dbx.IsSerializationFailure(err)
}

// classify turns a failed provisioning into a provisioning error.
func (s *AccountService) classify(ctx context.Context, err error) error {
	if errors.Is(err, dbx.ErrRollback) {
		s.logger.Error(ctx, "provisioning rollback failed", "error", err)
	}

	var pe *common.ProvisionError
	if errors.As(err, &pe) {
		if errors.Is(err, dbx.ErrRollback) {
			return &common.ProvisionError{Kind: pe.Kind, Reason: pe.Reason, Err: err}
		}
		return pe
	}

	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return common.Conflict("account exists", err)
	case lostIDRace(err):
		s.logger.Warn(ctx, "provisioning gave up after id races", "max_attempts", s.maxAttempts)
		return common.Conflict("account id taken", err)
	case ctx.Err() != nil:
		s.logger.Warn(ctx, "provisioning interrupted", "error", ctx.Err())
		return common.StorageFailure("provisioning interrupted", fmt.Errorf("%w: %w", ctx.Err(), err))
	}

	s.logger.Error(ctx, "provisioning failed", "error", err)
	return common.StorageFailure("storage error", err)
}

// VerifyUmbrellaPassword reports whether password matches the verifier
// stored for the battle.net account with this email. Unknown emails
// report false.
func (s *AccountService) VerifyUmbrellaPassword(ctx context.Context, email, password string) (bool, error) {
	candidate, err := cryptox.UmbrellaAccountHash(email, password)
	if err != nil {
		return false, err
	}

	account, err := s.repomanager.UmbrellaAccounts(s.db).GetByEmail(ctx, cryptox.Upper(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, common.StorageFailure("storage error", err)
	}

	return checkVerifier(account.PasswordHash, candidate), nil
}

// VerifyLegacyPassword reports whether password matches the verifier stored
// for the game account username, e.g. "1#1".
func (s *AccountService) VerifyLegacyPassword(ctx context.Context, username, password string) (bool, error) {
	candidate, err := cryptox.LegacyAccountHash(username, password)
	if err != nil {
		return false, err
	}

	account, err := s.repomanager.LegacyAccounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, common.StorageFailure("storage error", err)
	}

	return checkVerifier(account.PasswordHash, candidate), nil
}

func checkVerifier(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// ComputeLegacyHash returns the game account verifier for identifier and password.
func ComputeLegacyHash(identifier, password string) (string, error) {
	return cryptox.LegacyAccountHash(identifier, password)
}

// ComputeUmbrellaHash returns the battle.net account verifier for email and password.
func ComputeUmbrellaHash(email, password string) (string, error) {
	return cryptox.UmbrellaAccountHash(email, password)
}
