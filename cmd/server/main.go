// Package main implements the entry point for the karuta layout server,
// which builds 25-card layouts, gives placement advice and runs
// memorization tests over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/karuta-api/internal/config"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/platform/postgres"
)

// main loads configuration, sets up logging and either runs a migration
// command or starts the HTTP server.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := initializeApp(configPath)
	if err != nil {
		return err
	}
	log := slog.Default()

	if migrateCmd != "" {
		if cfg.Database.URL == "" {
			return fmt.Errorf("migrations require database.url to be set")
		}
		db, err := setupAppDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCmd, log)
	}

	db := openOptionalDatabase(ctx, cfg, log)
	app, err := newApplication(cfg, log, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// initializeApp loads configuration and installs the default logger.
func initializeApp(configPath string) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"catalog_path", cfg.Catalog.Path)
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}

	return cfg, nil
}
