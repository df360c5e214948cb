package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/karuta-api/internal/api"
	"github.com/phrazzld/karuta-api/internal/catalog"
	"github.com/phrazzld/karuta-api/internal/config"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/platform/postgres"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	// db is nil when the server runs without persistence.
	db *sql.DB

	catalog  *domain.Catalog
	engine   *advice.Engine
	sessions *layout.Manager
	decks    service.DeckService
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil db selects the unavailable deck service.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.catalog, err = catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog: %w", err)
	}
	logger.Info("Card catalog loaded", "cards", app.catalog.Len(), "path", cfg.Catalog.Path)

	app.engine, err = newAdviceEngine(cfg.Advice)
	if err != nil {
		return nil, fmt.Errorf("failed to create advice engine: %w", err)
	}

	app.sessions = layout.NewManager(app.catalog, app.engine, logger)

	if db != nil {
		app.decks, err = service.NewDeckService(
			db,
			postgres.NewPostgresDeckStore(db, logger),
			postgres.NewPostgresScoreStore(db, logger),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create deck service: %w", err)
		}
	} else {
		app.decks = service.NewUnavailableDeckService("deck persistence is not configured", logger)
	}

	logger.Info("Application initialized successfully", "persistence", app.decks.Available())
	return app, nil
}

// newAdviceEngine maps the configured thresholds onto advice parameters.
func newAdviceEngine(cfg config.AdviceConfig) (*advice.Engine, error) {
	return advice.NewEngine(advice.Params{
		TwoCharMidLowRatio: advice.Ratio{Num: cfg.TwoCharRatioNum, Den: cfg.TwoCharRatioDen},
		SideClusterMin:     cfg.SideClusterMin,
		LargeClassMin:      domain.DecisivenessClass(cfg.LargeClassMin),
	})
}

// handler builds the HTTP router over the application's services.
func (app *application) handler() http.Handler {
	return api.NewRouter(app.sessions, app.decks, app.logger)
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.handler()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed", "open_sessions", app.sessions.Len())
}
