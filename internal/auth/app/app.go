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

	httpapi "github.com/aussiebroadwan/dynaform/internal/auth/http"
	"github.com/aussiebroadwan/dynaform/internal/auth/passkey"
	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store
	rp *passkey.RelyingParty

	challengeService      *service.ChallengeService
	revocationService     *service.RevocationService
	tokenService          *service.TokenService
	userService           *service.UserService
	registrationService   *service.RegistrationService
	authenticationService *service.AuthenticationService
	sessions              *service.SessionAuthenticator
	housekeepingService   *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(context.Background()); err != nil {
		return nil, err
	}

	rp, err := passkey.NewRelyingParty(passkey.Config{
		RPID:          cfg.RPID,
		RPDisplayName: cfg.RPDisplayName,
		RPOrigins:     cfg.RPOrigins,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to configure relying party: %w", err)
	}
	app.rp = rp

	keys, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices(keys)
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"addr", app.cfg.HTTPAddr,
		"version", BuildVersion,
		"rp_id", app.cfg.RPID,
		"shared_state", app.cfg.RedisURL != "",
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Handler exposes the routed HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initStore opens sqlite, applies migrations and, when configured, moves
// challenges and revocations to Redis.
func (app *Application) initStore(ctx context.Context) error {
	db, err := sqlite.NewStore(app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully")

	if app.cfg.RedisURL == "" {
		app.db = db
		return nil
	}

	client, err := redis.Connect(ctx, app.cfg.RedisURL)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.db = redis.NewOverlay(db, client)
	app.logger.Info("challenges and revocations stored in redis")
	return nil
}

func (app *Application) initServices(keys *service.SessionKeys) {
	app.challengeService = &service.ChallengeService{Store: app.db, TTL: app.cfg.ChallengeTTL}
	app.revocationService = &service.RevocationService{Store: app.db}

	app.tokenService = &service.TokenService{
		Keys:        keys,
		Store:       app.db,
		Revocations: app.revocationService,
		Issuer:      app.cfg.Issuer,
		AccessTTL:   app.cfg.AccessTTL,
		RefreshTTL:  app.cfg.RefreshTTL,
	}

	app.userService = &service.UserService{Store: app.db, AdminEmails: app.cfg.AdminEmails}
	app.registrationService = &service.RegistrationService{
		Store:      app.db,
		Challenges: app.challengeService,
		Verifier:   app.rp,
	}
	app.authenticationService = &service.AuthenticationService{
		Store:      app.db,
		Challenges: app.challengeService,
		Verifier:   app.rp,
		Tokens:     app.tokenService,
	}
	app.sessions = &service.SessionAuthenticator{
		Tokens:      app.tokenService,
		Revocations: app.revocationService,
		Store:       app.db,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.challengeService,
		app.revocationService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.cfg.RateLimits.Profiles(), app.logger)

	router.UserService = app.userService
	router.RegistrationService = app.registrationService
	router.AuthenticationService = app.authenticationService
	router.TokenService = app.tokenService
	router.Sessions = app.sessions
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: app.cfg.ReadHeaderTimeout,
	}
}
