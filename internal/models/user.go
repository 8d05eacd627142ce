// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the Smashboard community.
// Users are never hard-deleted; IsActive flips on deactivation.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:80;unique;not null;index" json:"username"`
	Email     string     `gorm:"size:120;unique;not null;index" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Bio       string     `gorm:"type:text" json:"bio"`
	Avatar    string     `gorm:"size:255;default:'default_avatar.png'" json:"avatar"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}
