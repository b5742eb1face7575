package storage

import (
	"github.com/zaikaman/KaspaClash-sub007/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, charactersFromConfig []game.Character) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; the data file is disposable
	// in development.
	if err := db.AutoMigrate(&game.Character{}, &game.Match{}, &game.Fighter{}); err != nil {
		return nil, err
	}

	seedDefaultCharacters(db, charactersFromConfig)
	return db, nil
}

// seedDefaultCharacters inserts the configured roster on first run. Only
// identity columns are persisted; combat stats always come from the
// config file, which stays the single source of truth.
func seedDefaultCharacters(db *gorm.DB, charactersFromConfig []game.Character) {
	var count int64
	db.Model(&game.Character{}).Count(&count)
	if count > 0 {
		return
	}
	characters := make([]game.Character, len(charactersFromConfig))
	copy(characters, charactersFromConfig)
	db.Create(&characters)
}
