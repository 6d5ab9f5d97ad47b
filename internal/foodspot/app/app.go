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

	httpapi "github.com/aussiebroadwan/foodspot/internal/foodspot/http"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store/drivers/sqlite"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application holds the FoodSpot service and all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	images     media.ImageStore
	files      http.Handler

	hasher              *cryptox.PasswordHasher
	codec               *service.SessionCodec
	verifier            *service.CredentialVerifier
	registrationService *service.RegistrationService
	profileService      *service.ProfileService
	foodService         *service.FoodService
	engagementService   *service.EngagementService
	revocationService   *service.RevocationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "foodspot",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Keys come after the database so persistent mode can load them.
	ctx := context.Background()
	keyManager, err := InitSessionKeys(ctx, cfg, app.db, app.logger, time.Now())
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initMedia(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("foodspot starting", "addr", app.cfg.HTTPAddr, "version", BuildVersion, "env", app.cfg.Env)

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

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down foodspot...")

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
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("foodspot stopped")
	return nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initMedia selects object storage when a bucket is configured and the local
// upload directory otherwise.
func (app *Application) initMedia(ctx context.Context) error {
	if app.cfg.S3.Bucket != "" {
		s3Store, err := media.NewS3Store(ctx, app.cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		app.images = s3Store
		app.logger.Info("image uploads stored in object storage", "bucket", app.cfg.S3.Bucket)
		return nil
	}

	fsStore, err := media.NewFSStore(app.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload directory: %w", err)
	}
	app.images = fsStore
	app.files = fsStore.Handler()
	app.logger.Info("image uploads stored on disk", "dir", app.cfg.UploadDir)
	return nil
}

func (app *Application) initServices() {
	var pepper []byte
	if app.cfg.PasswordPepper != "" {
		pepper = []byte(app.cfg.PasswordPepper)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	app.codec = &service.SessionCodec{
		Keys:         app.keyManager,
		Issuer:       app.cfg.Issuer,
		Audience:     app.cfg.Audience,
		TTL:          app.cfg.SessionTTL,
		RefreshAfter: app.cfg.SessionRefreshAfter,
	}

	app.verifier = &service.CredentialVerifier{Store: app.db, Hasher: app.hasher}
	app.registrationService = &service.RegistrationService{Store: app.db, Hasher: app.hasher}
	app.profileService = &service.ProfileService{Store: app.db}
	app.foodService = &service.FoodService{Store: app.db}
	app.engagementService = &service.EngagementService{Store: app.db}
	app.revocationService = &service.RevocationService{Store: app.db, TTL: app.cfg.SessionTTL}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.keyManager,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.KeyRotationPeriod,
	)
}

func (app *Application) initHTTP() {
	sessions := &httpapi.Sessions{
		Codec:  app.codec,
		Secure: app.cfg.Production(),
	}
	if app.cfg.RevocationCheck {
		sessions.Revocations = app.revocationService
		app.logger.Info("session revocation check enabled")
	}

	router := httpapi.NewRouter(sessions, app.keyManager, BuildVersion, app.db, app.logger)
	router.Options = httpapi.Options{
		AuthTimeout:      app.cfg.AuthTimeout,
		RateLimitEnabled: app.cfg.RateLimitEnabled,
		LoginLimit:       httpx.PerMinute(app.cfg.LoginRPM, app.cfg.LoginBurst),
		RegisterLimit:    httpx.PerMinute(app.cfg.RegisterRPM, app.cfg.RegisterBurst),
		UploadMaxBytes:   app.cfg.UploadMaxBytes,
		Swagger:          app.cfg.SwaggerEnabled,
	}

	router.Verifier = app.verifier
	router.Registration = app.registrationService
	router.Profiles = app.profileService
	router.Foods = app.foodService
	router.Engagement = app.engagementService
	router.Revocations = app.revocationService
	router.Images = app.images
	router.Files = app.files
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
