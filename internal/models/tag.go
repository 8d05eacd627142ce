package models

import (
	"time"
)

// Tag is created lazily the first time a post uses its name and is never
// deleted, even when UsageCount drops back to zero.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;unique;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UsageCount  int       `gorm:"not null;default:0;index" json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
}
