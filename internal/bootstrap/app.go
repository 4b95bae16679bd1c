package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/account"
	"fitable-backend/internal/catalog"
	"fitable-backend/internal/history"
	"fitable-backend/internal/measurements"
	"fitable-backend/internal/product"
	"fitable-backend/internal/recommendations"
	"fitable-backend/internal/references"
	"fitable-backend/internal/services/health"
	"fitable-backend/internal/shared/auth"
	"fitable-backend/internal/shared/config"
	"fitable-backend/internal/shared/server"
	"fitable-backend/internal/shared/storage/db"
	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/sizing"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Tokens *auth.Tokens
	Engine *sizing.Engine

	MeasurementsRepo measurements.Repo
	ReferencesRepo   references.Repo
	HistoryRepo      history.Repo
	CatalogRepo      catalog.Repo

	MeasurementsService    *measurements.Service
	ReferencesService      *references.Service
	HistoryService         *history.Service
	CatalogService         *catalog.Service
	RecommendationsService *recommendations.Service
	AccountService         *account.Service
	HealthService          *health.Service
}

// Build connects storage, seeds the brand catalog and wires every handler.
// Dev-like environments fall back to in-memory repositories when no database
// is reachable.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tables, err := buildTables(cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: tokens,
		Engine: sizing.New(tables),
	}
	buildRepos(app)
	buildServices(app, buildProductSource(cfg))

	if _, err := app.CatalogService.EnsureSeeded(ctx); err != nil {
		return nil, fmt.Errorf("seed brand catalog: %w", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 cfg,
		Tokens:                 tokens,
		Health:                 health.NewHandler(app.HealthService),
		MeasurementsHandler:    measurements.NewHandler(app.MeasurementsService),
		ReferencesHandler:      references.NewHandler(app.ReferencesService),
		CatalogHandler:         catalog.NewHandler(app.CatalogService),
		RecommendationsHandler: recommendations.NewHandler(app.RecommendationsService),
		HistoryHandler:         history.NewHandler(app.HistoryService),
		AccountHandler:         account.NewHandler(app.AccountService),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildTables(cfg config.Config) (*sizing.Tables, error) {
	path := strings.TrimSpace(cfg.SizingTablesPath)
	if path == "" {
		return sizing.DefaultTables()
	}
	t, err := sizing.LoadTables(path)
	if err != nil {
		return nil, err
	}
	telemetry.Info("bootstrap.sizing_tables", map[string]any{"path": path})
	return t, nil
}

// buildProductSource returns nil when no scraper is configured; requests must
// then carry product attributes inline.
func buildProductSource(cfg config.Config) product.Source {
	base := strings.TrimSpace(cfg.ScraperURL)
	if base == "" {
		return nil
	}
	return product.NewHTTPSource(base, cfg.ScraperTimeout, product.DefaultBreakerSettings())
}

func buildRepos(app *App) {
	if app.DB != nil {
		app.MeasurementsRepo = &measurements.PGRepo{DB: app.DB}
		app.ReferencesRepo = &references.PGRepo{DB: app.DB}
		app.HistoryRepo = &history.PGRepo{DB: app.DB}
		app.CatalogRepo = &catalog.PGRepo{DB: app.DB}
		return
	}
	app.MeasurementsRepo = measurements.NewMemoryRepo()
	app.ReferencesRepo = references.NewMemoryRepo()
	app.HistoryRepo = history.NewMemoryRepo()
	app.CatalogRepo = catalog.NewMemoryRepo()
}

func buildServices(app *App, source product.Source) {
	app.MeasurementsService = measurements.NewService(app.MeasurementsRepo)
	app.ReferencesService = references.NewService(app.ReferencesRepo)
	app.HistoryService = history.NewService(app.HistoryRepo)
	app.CatalogService = catalog.NewService(app.CatalogRepo)
	app.AccountService = account.NewService(app.MeasurementsRepo, app.ReferencesRepo, app.HistoryRepo)
	app.HealthService = health.NewService(app.DB)
	app.RecommendationsService = &recommendations.Service{
		Profiles:   app.MeasurementsService,
		References: app.ReferencesService,
		Charts:     app.CatalogService,
		Products:   source,
		Engine:     app.Engine,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
