package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/arvorebank/overdraft/internal/overdraft/http"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/internal/overdraft/store/drivers/sqlite"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/jwtx"
	"github.com/arvorebank/overdraft/pkg/slogx"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the overdraft service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	keys     *jwtx.KeySet
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	registryService     *service.RegistryService
	ledgerService       *service.LedgerService
	operatorService     *service.OperatorService
	credentialService   *service.CredentialService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "overdraft-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.registry = prometheus.NewRegistry()
	app.metrics = metrics.New(app.registry)

	if err := app.initServices(); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if err := app.bootstrapService.Run(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	app.housekeepingService.Start()

	app.logger.Info("overdraft service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down overdraft service...")

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

	app.logger.Info("overdraft service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initServices initializes all business logic services
func (app *Application) initServices() error {
	signer, verifier, keys, err := initSigningKeys(app.cfg.Issuer, app.logger)
	if err != nil {
		return err
	}
	app.keys = keys

	app.ledgerService = &service.LedgerService{
		Store:   app.db,
		Metrics: app.metrics,
	}
	app.registryService = &service.RegistryService{
		Store:   app.db,
		Ledger:  app.ledgerService,
		Metrics: app.metrics,
	}
	app.operatorService = &service.OperatorService{
		Store:      app.db,
		SessionTTL: app.cfg.SessionTTL,
		Metrics:    app.metrics,
	}
	app.credentialService = &service.CredentialService{
		Signer:    signer,
		Verifier:  verifier,
		Store:     app.db,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTokenTTL,
		Metrics:   app.metrics,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Operator: service.SeedOperator{
			Username:          app.cfg.AdminUsername,
			Password:          app.cfg.AdminPassword,
			OperationPassword: app.cfg.AdminOperationPassword,
		},
		Applications: seedApplications(app.cfg),
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func seedApplications(cfg Config) []service.SeedApplication {
	var apps []service.SeedApplication
	if cfg.SeedAppClientID != "" {
		apps = append(apps, service.SeedApplication{
			ClientID: cfg.SeedAppClientID,
			Secret:   cfg.SeedAppSecret,
			Name:     cfg.SeedAppName,
		})
	}
	if cfg.SecondAppClientID != "" {
		apps = append(apps, service.SeedApplication{
			ClientID: cfg.SecondAppClientID,
			Secret:   cfg.SecondAppSecret,
			Name:     cfg.SecondAppName,
		})
	}
	return apps
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		BuildVersion,
		app.db,
		app.logger,
		app.registry,
	)

	router.RegistryService = app.registryService
	router.LedgerService = app.ledgerService
	router.OperatorService = app.operatorService
	router.CredentialService = app.credentialService
	router.Metrics = app.metrics
	router.SecureCookies = app.cfg.Env == "prod"
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
