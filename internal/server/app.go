// Package server initializes and runs the account API: it opens the
// database, applies migrations, wires services into the HTTP server and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/acquisitions/internal/logging"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/config"
	"github.com/dmitrijs2005/acquisitions/internal/server/cookies"
	"github.com/dmitrijs2005/acquisitions/internal/server/httpserver"
	"github.com/dmitrijs2005/acquisitions/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/acquisitions/internal/server/services"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	authService *services.AuthService
}

// NewApp opens the connection pool and builds the services. No connection is
// made until the pool is first used.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.Environment, c.LogLevel)

	if c.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		userService: services.NewUserService(db, rm, hasher, logger),
		authService: services.NewAuthService(db, rm, hasher, logger),
	}, nil
}

// AuthService exposes account creation to tools that share the app wiring.
func (app *App) AuthService() *services.AuthService {
	return app.authService
}

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	tokens := auth.NewTokenManager([]byte(app.config.SecretKey), app.config.TokenValidityDuration)
	jar := cookies.New(app.config.IsProduction(), app.config.TokenValidityDuration)

	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.userService, tokens, jar)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server error", "error", err)
		cancelFunc()
	}
}

// Run migrates the database and serves until a termination signal arrives
// or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Environment)

	if err := app.Migrate(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
