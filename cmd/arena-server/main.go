package main

import (
	"os"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/api"
	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
	"github.com/zaikaman/KaspaClash-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the arena configuration file (required). Path may be provided
	// via ARENA_CONFIG or defaults to ./arena_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via ARENA_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg)

	moveTimeout := time.Duration(cfg.MoveTimeoutSeconds) * time.Second
	svc := service.New(repo, cfg.Balance, cfg.Characters, moveTimeout)
	handler := api.NewMatchHandler(repo, svc)

	// Background scanner: forces moves for idle players once the move
	// deadline passes and expires lobbies nobody joined.
	startTimeoutScanner(repo, svc)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCharacters, handler.ListCharacters)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteMatches, handler.ListOpenMatches)
		apiRoutes.GET(constants.RouteMatchByCode, handler.GetMatch)
		apiRoutes.GET(constants.RoutePlayerByAddr, handler.GetPlayer)

		// Wallet-authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.WalletRequired())
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		protected.POST(constants.RouteMatchMove, handler.SubmitMove)
		protected.POST(constants.RouteMatchResign, handler.Resign)
	}

	// Start server on configured address; ARENA_ADDR wins over the config.
	addr := cfg.ServerAddress
	if env := os.Getenv(constants.EnvListenAddr); env != "" {
		addr = env
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
