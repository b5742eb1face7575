package main

import (
	"github.com/zaikaman/KaspaClash-sub007/internal/config"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
	"github.com/zaikaman/KaspaClash-sub007/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path, "hint": "create an arena_config.json with a 'character_list' array of character objects (key,display_name,max_health,max_energy,energy_regen) and optional keys: server.address, balance, move_timeout_seconds"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Characters)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, cfg.Characters, cfg.Balance.DefaultRating)
}
