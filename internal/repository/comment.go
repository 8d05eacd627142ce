package repository

import (
	"context"
	"errors"

	"smashboard/internal/cache"
	"smashboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListActiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, id, postID uint) error
	ToggleLike(ctx context.Context, userID, commentID uint) (liked bool, likeCount int, err error)
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and bumps the post's comment_count in the same
// transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// GetByID returns the comment regardless of its deleted flag. Depth walks
// must pass through deleted ancestors, so filtering happens in list queries
// instead.
func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListActiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// Update writes the comment body only; like_count belongs to ToggleLike's
// transaction and must not be rewound by a stale struct.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).
		Model(comment).
		Select("content").
		Updates(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// SoftDelete marks the comment deleted and decrements the post's
// comment_count. The is_deleted guard makes a repeated delete a no-op, so
// the counter never double-decrements.
func (r *commentRepository) SoftDelete(ctx context.Context, id, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Where("id = ? AND is_deleted = ?", id, false).
			UpdateColumn("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ? AND comment_count > 0", postID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// ToggleLike flips the (user, comment) like edge and keeps like_count in
// lockstep, mirroring the post like toggle.
func (r *commentRepository) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int, error) {
	var liked bool
	var likeCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&models.CommentLike{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			liked = false
			if err := tx.Model(&models.Comment{}).
				Where("id = ? AND like_count > 0", commentID).
				UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
				return err
			}
		} else {
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.CommentLike{UserID: userID, CommentID: commentID})
			if ins.Error != nil {
				return ins.Error
			}
			liked = true
			if ins.RowsAffected > 0 {
				if err := tx.Model(&models.Comment{}).
					Where("id = ?", commentID).
					UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&models.Comment{}).
			Select("like_count").
			Where("id = ?", commentID).
			Scan(&likeCount).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	return liked, likeCount, nil
}
