package database

import (
	"fmt"

	"voting-service/internal/ports/models"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	// gen_random_uuid needs pgcrypto on older Postgres versions
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	modelsToMigrate := []interface{}{
		&models.Poll{},
		&models.PollOption{},
		&models.Vote{},
		&models.VoteSelection{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
