package models

import (
	"time"
)

// MaxCommentDepth is the deepest level a comment thread can reach:
// root (0), reply (1), reply-to-reply (2).
const MaxCommentDepth = 2

// Comment belongs to a post and optionally to a parent comment, forming a
// thread. IsDeleted is an explicit flag rather than a GORM soft delete so
// that depth traversal can still walk through removed parents.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
