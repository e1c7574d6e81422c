// Package server wires the application together: configuration, database,
// migrations, seeding, services, and the HTTP listener with graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsavelev/foliotrack/internal/logging"
	"github.com/dsavelev/foliotrack/internal/server/config"
	"github.com/dsavelev/foliotrack/internal/server/httpapi"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/dsavelev/foliotrack/internal/server/seed"
	"github.com/dsavelev/foliotrack/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

// NewApp opens the database, runs migrations and seeding, and builds the
// service graph. Migrations and seeding run synchronously: the listener
// never accepts traffic against an unprepared schema.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	if err := seed.Run(ctx, db, rm, logger, cfg.SeedDemoData); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}

	activity := services.NewActivityLogService(db, rm, logger)
	api := httpapi.NewServer(
		cfg,
		logger,
		db.PingContext,
		services.NewAuthService(db, rm, activity, cfg),
		services.NewInvestmentService(db, rm, activity),
		services.NewTransactionService(db, rm, activity),
		services.NewReportService(db, rm),
		services.NewAdminService(db, rm, activity),
	)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then drains in-flight requests.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:    app.config.HTTPAddr,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "http server listening", "addr", app.config.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return app.db.Close()
}
