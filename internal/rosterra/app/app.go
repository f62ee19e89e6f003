package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/rosterra/internal/rosterra/http"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/postgres"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/sqlite"
	"github.com/aussiebroadwan/rosterra/pkg/cryptox"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	secretSize = cryptox.TokenSize256
)

// Application encapsulates the roster server with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	authService    *service.AuthService
	accountService *service.AccountService
	rosterService  *service.RosterService
	seedService    *service.SeedService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "rosterra",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	configurePasswords(cfg)

	db, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied", "driver", cfg.DatabaseDriver)

	if err := app.initTokens(); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initServices()

	if cfg.SeedDefaultAdmin {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if _, err := app.seedService.SeedDefaultAdmin(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("rosterra starting", "port", app.cfg.Port, "version", BuildVersion, "prefix", app.cfg.APIPrefix)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down rosterra...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("rosterra stopped")
	return nil
}

// OpenStore opens the configured database and applies migrations.
func OpenStore(cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case "sqlite", "":
		db, err = sqlite.NewStore(sqlite.FileDSN(cfg.DatabaseURL))
	case "postgres", "postgresql":
		db, err = postgres.NewStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func configurePasswords(cfg Config) {
	cryptox.SetPepperPath(cfg.PepperFile)
	cryptox.SetParams(cryptox.Params{
		Memory:     uint32(max(cfg.PasswordMemoryKiB, 0)),
		Iterations: uint32(max(cfg.PasswordIterations, 0)),
	})
}

// initTokens builds the HS256 signer and verifier. Without JWT_SECRET the
// secret is read from, or generated into, JWTSecretFile so tokens survive a
// restart.
func (app *Application) initTokens() error {
	secret := app.cfg.JWTSecret
	if secret == "" {
		var err error
		secret, err = cryptox.LoadOrGenerateSecret(app.cfg.JWTSecretFile, secretSize)
		if err != nil {
			return fmt.Errorf("failed to load signing secret: %w", err)
		}
		app.logger.Info("signing secret loaded", "file", app.cfg.JWTSecretFile)
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to create signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), app.cfg.Issuer, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	app.signer = signer
	app.verifier = verifier
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
	}
	app.accountService = &service.AccountService{Store: app.db}
	app.rosterService = &service.RosterService{Store: app.db}
	app.seedService = NewSeedService(app.cfg, app.db)
}

// NewSeedService builds the default-admin seeder from cfg.
func NewSeedService(cfg Config, db store.Store) *service.SeedService {
	return &service.SeedService{
		Store:    db,
		Email:    cfg.DefaultAdminEmail,
		Password: cfg.DefaultAdminPassword,
		Name:     cfg.DefaultAdminName,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.cfg.APIPrefix,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.AccountService = app.accountService
	router.RosterService = app.rosterService
	router.Use(httpx.CORS(app.cfg.CORSOrigins))
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
