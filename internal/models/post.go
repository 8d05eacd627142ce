package models

import (
	"time"
)

// Post is a published (or draft) discussion topic. The engagement counters
// are denormalized; every repository mutation that touches the underlying
// relationship adjusts the counter in the same transaction.
type Post struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"size:100;not null;index" json:"title"`
	Content      string   `gorm:"type:text;not null" json:"content"`
	AuthorID     uint     `gorm:"not null;index" json:"author_id"`
	Author       User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category     Category `gorm:"type:varchar(20);not null;default:'Other';index" json:"category"`
	ViewCount    int      `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int      `gorm:"not null;default:0" json:"like_count"`
	CommentCount int      `gorm:"not null;default:0" json:"comment_count"`
	IsPinned     bool     `gorm:"not null;default:false" json:"is_pinned"`
	IsDraft      bool     `gorm:"not null;default:false" json:"is_draft"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	// ContentHTML and Preview are rendered at response time, never persisted.
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
	Preview     string `gorm:"-" json:"preview,omitempty"`
}
