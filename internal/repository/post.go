package repository

import (
	"context"
	"errors"
	"strings"

	"smashboard/internal/cache"
	"smashboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error)
	ListPublished(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, includeDrafts bool) ([]*models.Post, error)
	ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error)
	ListBookmarkedBy(ctx context.Context, userID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementView(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likeCount int, err error)
	ToggleBookmark(ctx context.Context, userID, postID uint) (bookmarked bool, err error)
	LikedPostIDs(ctx context.Context, userID uint) ([]uint, error)
	LikersForPosts(ctx context.Context, postIDs []uint) ([]models.PostLike, error)
	LikesByUsers(ctx context.Context, userIDs []uint) ([]models.PostLike, error)
	BookmarksByUsers(ctx context.Context, userIDs []uint) ([]models.Bookmark, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Tags").
			Preload("Author").
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns published posts for index pages, pinned first, newest next.
func (r *postRepository) List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		Where("is_draft = ?", false)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("is_pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListPublished materializes every non-draft post. The hotness and
// recommendation rankings sort this full set in memory because the decay
// formula cannot be pushed into a store-level ORDER BY.
func (r *postRepository) ListPublished(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		Where("is_draft = ?", false).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, includeDrafts bool) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).
		Preload("Tags").
		Where("author_id = ?", authorID)
	if !includeDrafts {
		q = q.Where("is_draft = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN post_likes pl ON pl.post_id = posts.id").
		Where("pl.user_id = ?", userID).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListBookmarkedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN bookmarks b ON b.post_id = posts.id").
		Where("b.user_id = ?", userID).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		Where("is_draft = ?", false).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update writes the editable columns only. The counters are owned by their
// transactional toggles; a full-row Save would rewind a like that landed
// between the editor's read and the write.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "category", "is_draft").
		Updates(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete hard-deletes the post and everything hanging off it: comments and
// their likes, post likes, bookmarks, and tag associations with usage
// decrements. One transaction, so a partial cascade cannot survive.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tagIDs []uint
		if err := tx.Table("post_tags").
			Where("post_id = ?", id).
			Pluck("tag_id", &tagIDs).Error; err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := tx.Model(&models.Tag{}).
				Where("id IN ? AND usage_count > 0", tagIDs).
				UpdateColumn("usage_count", gorm.Expr("usage_count - ?", 1)).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", id),
		).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateTagList(ctx)
	return nil
}

func (r *postRepository) IncrementView(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike flips the (user, post) like edge and keeps like_count in
// lockstep inside one transaction. The delete-first probe doubles as the
// state check, so concurrent toggles cannot drift the counter.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	var liked bool
	var likeCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostLike{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			liked = false
			if err := tx.Model(&models.Post{}).
				Where("id = ? AND like_count > 0", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
				return err
			}
		} else {
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.PostLike{UserID: userID, PostID: postID})
			if ins.Error != nil {
				return ins.Error
			}
			liked = true
			if ins.RowsAffected > 0 {
				if err := tx.Model(&models.Post{}).
					Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&models.Post{}).
			Select("like_count").
			Where("id = ?", postID).
			Scan(&likeCount).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return liked, likeCount, nil
}

// ToggleBookmark flips the (user, post) bookmark edge. Bookmarks carry no
// denormalized counter.
func (r *postRepository) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	var bookmarked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			bookmarked = false
			return nil
		}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Bookmark{UserID: userID, PostID: postID})
		if ins.Error != nil {
			return ins.Error
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return bookmarked, nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// LikersForPosts returns every like edge on the given posts; the similarity
// finder scores co-likers from these.
func (r *postRepository) LikersForPosts(ctx context.Context, postIDs []uint) ([]models.PostLike, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likes []models.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) LikesByUsers(ctx context.Context, userIDs []uint) ([]models.PostLike, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var likes []models.PostLike
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) BookmarksByUsers(ctx context.Context, userIDs []uint) ([]models.Bookmark, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&bookmarks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookmarks, nil
}
