package db

import (
	"mismon/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Tick{},
		&models.DailyMeta{},
		&models.Detection{},
	)
}
