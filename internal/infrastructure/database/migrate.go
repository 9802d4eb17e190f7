package database

import (
	"fmt"

	"gorm.io/gorm"

	"voxchat-server/internal/infrastructure/database/entities"
)

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.ChatSession{},
		&entities.Turn{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
