package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/karuta-api/internal/config"
)

// setupAppDatabase establishes a connection to the database and configures connection pools.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// openOptionalDatabase returns nil when no database is configured or it
// cannot be reached. The server then runs without deck persistence.
func openOptionalDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *sql.DB {
	if cfg.Database.URL == "" {
		logger.Warn("No database configured, deck persistence disabled")
		return nil
	}
	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Database unavailable, deck persistence disabled", "error", err)
		return nil
	}
	return db
}
