package main

import (
	"context"
	"log"

	"cinevibe/cmd"
	"cinevibe/internal/data/repository"
	"cinevibe/internal/wire"
	"cinevibe/pkg/database"
	"cinevibe/pkg/storage"
	"cinevibe/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Schema and optional sample data
	ctx := context.Background()
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if config.App.SeedSampleData {
		if err := database.SeedSampleData(ctx, db, logger); err != nil {
			logger.Fatal("Failed to seed sample data", zap.Error(err))
		}
	}

	// Upload storage
	photos, err := storage.NewLocalPhotoStore(config.Upload.Dir, config.Upload.MaxSizeMB, logger)
	if err != nil {
		logger.Fatal("Failed to init photo storage", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, photos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
