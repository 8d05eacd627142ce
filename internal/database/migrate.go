package database

import (
	"smashboard/internal/models"

	"gorm.io/gorm"
)

// Models lists every entity registered for auto-migration. Join models are
// explicit so their composite primary keys and counters migrate too.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.PostLike{},
		&models.Bookmark{},
		&models.CommentLike{},
	}
}

// Migrate runs GORM auto-migration for the full model registry.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
