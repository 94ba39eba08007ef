package main

import (
	"context"
	"log"

	"github.com/alexivanou/countrydata-api/internal/config"
	"github.com/alexivanou/countrydata-api/internal/database"
	"github.com/alexivanou/countrydata-api/internal/fetcher"
	"github.com/alexivanou/countrydata-api/internal/render"
	"github.com/alexivanou/countrydata-api/internal/repository"
	"github.com/alexivanou/countrydata-api/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Auto-migrate if using memory DB to ensure schema exists
	if cfg.DB.IsMemory() {
		m, err := migrate.New("file://migrations/sqlite", "sqlite3://"+cfg.DB.DSN())
		if err != nil {
			logger.Fatal("Failed to init migration", zap.Error(err))
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	repo := repository.NewCountryRepository(db, cfg.DB.Type)
	upstream := fetcher.New(cfg.Upstream)
	renderer := render.NewRenderer(cfg.Cache.Dir)
	svc := service.NewService(repo, upstream, renderer, logger)

	logger.Info("Refreshing countries from upstream...")

	resp, err := svc.RefreshCountries(context.Background())
	if err != nil {
		logger.Fatal("Refresh failed", zap.Error(err))
	}

	logger.Info("Refresh completed successfully!",
		zap.Int("total_countries", resp.TotalCountries),
	)
}
