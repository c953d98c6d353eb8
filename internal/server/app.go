// Package server initializes and runs the accounts server: it opens the
// database, applies migrations, wires the account service into the gRPC
// endpoint and stops gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/clock"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/logging"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/config"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/repositories/repomanager"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/services"

	gs "github.com/David-Parker/StormCoreAccountsAPI/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
}

// NewApp opens the database cfg points at and brings its schema up to date.
// Logs are written as JSON to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.NewJSON(w, c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, m, err := repomanager.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "operator tokens are signed with the development secret key, set "+config.EnvPrefix+"SECRET_KEY")
	}

	as := services.NewAccountService(db, m, c, logger.With("module", "accounts"), clock.New())

	return &App{config: c, logger: logger, db: db, accountService: as}, nil
}

// initSignalHandler cancels on SIGINT, SIGTERM or SIGQUIT. The returned
// channel is closed once the handler has stopped listening, which happens
// at the first signal or when ctx is done.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService, app.config.SecretKey, app.config.AccessTokenValidityDuration)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	signalsDone := app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
	cancelFunc()
	<-signalsDone

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
