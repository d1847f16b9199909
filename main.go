package main

import (
	"log"

	"bus-booking/cmd"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/wire"
	"bus-booking/pkg/database"
	"bus-booking/pkg/utils"

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
		zap.String("gateway_mode", config.Gateway.Mode),
		zap.Bool("debug", config.App.Debug),
	)

	// The database backs the local booking API; remote mode proxies another
	// deployment and runs without one.
	var repos *repository.Repository
	if config.Gateway.Mode != utils.GatewayModeRemote {
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		repos = repository.NewRepository(db, logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
