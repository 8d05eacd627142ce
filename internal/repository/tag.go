package repository

import (
	"context"
	"errors"
	"strings"

	"smashboard/internal/cache"
	"smashboard/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	ListForPost(ctx context.Context, postID uint) ([]*models.Tag, error)
	AttachTags(ctx context.Context, postID uint, names []string) ([]*models.Tag, error)
	DetachTag(ctx context.Context, postID, tagID uint) error
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

// List returns all tags ordered by usage, most used first.
func (r *tagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagListKey, &tags, cache.TagListTTL, func() error {
		return r.db.WithContext(ctx).
			Order("usage_count DESC, name ASC").
			Find(&tags).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) ListForPost(ctx context.Context, postID uint) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags pt ON pt.tag_id = tags.id").
		Where("pt.post_id = ?", postID).
		Find(&tags).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// AttachTags links each named tag to the post, creating tags that do not
// exist yet. usage_count only moves when a join row is actually inserted,
// so re-attaching an already-attached tag is a no-op.
func (r *tagRepository) AttachTags(ctx context.Context, postID uint, names []string) ([]*models.Tag, error) {
	var attached []*models.Tag

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			var tag models.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: name}
				if err := tx.Create(&tag).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			ins := tx.Exec(
				"INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				postID, tag.ID,
			)
			if ins.Error != nil {
				return ins.Error
			}
			if ins.RowsAffected > 0 {
				if err := tx.Model(&models.Tag{}).
					Where("id = ?", tag.ID).
					UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error; err != nil {
					return err
				}
				tag.UsageCount++
			}
			attached = append(attached, &tag)
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTagList(ctx)
	return attached, nil
}

// DetachTag removes the post-tag link and decrements usage. Detaching a tag
// that is not attached is a no-op.
func (r *tagRepository) DetachTag(ctx context.Context, postID, tagID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Exec("DELETE FROM post_tags WHERE post_id = ? AND tag_id = ?", postID, tagID)
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Tag{}).
			Where("id = ? AND usage_count > 0", tagID).
			UpdateColumn("usage_count", gorm.Expr("usage_count - ?", 1)).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTagList(ctx)
	return nil
}
