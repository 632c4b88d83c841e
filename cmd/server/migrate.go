package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/soaringjerry/klausurarchiv/internal/db"
)

// migrate applies pending SQL migrations to the sqlite preference store.
// Other backends have no schema.
func migrate(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Prefs.Backend != "sqlite" {
		logger.Info("Nothing to migrate", zap.String("backend", cfg.Prefs.Backend))
		return nil
	}

	sqlDB, err := db.OpenSQLite(cfg.Prefs.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			logger.Warn("Failed to close sqlite db", zap.Error(cerr))
		}
	}()

	applied, err := db.RunMigrations(ctx, sqlDB, cfg.Prefs.MigrationsDir)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) == 0 {
		logger.Info("Schema is up to date", zap.String("path", cfg.Prefs.Path))
		return nil
	}
	logger.Info("Applied migrations", zap.Strings("migrations", applied), zap.String("path", cfg.Prefs.Path))
	return nil
}
