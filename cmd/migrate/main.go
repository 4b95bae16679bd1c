package main

// Apply database migrations and seed the brand catalog:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"fitable-backend/internal/catalog"
	"fitable-backend/internal/shared/config"
	"fitable-backend/internal/shared/storage/db"
	"fitable-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		telemetry.Error("config.load_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Init(telemetry.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if _, err := catalog.NewService(&catalog.PGRepo{DB: sqlDB}).EnsureSeeded(ctx); err != nil {
		telemetry.Error("migrate.seed_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
