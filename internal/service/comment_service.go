package service

import (
	"context"
	"strings"

	"smashboard/internal/models"
	"smashboard/internal/repository"
)

// CommentService handles threaded comments on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID   uint
	AuthorID uint
	Content  string
	ParentID *uint
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateComment adds a comment or reply. A reply is rejected when its
// parent already sits at the maximum depth, so threads never exceed three
// levels: root, reply, reply-to-reply.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.IsDraft {
		return nil, models.NewValidationError("Cannot comment on a draft")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
		depth, err := s.Depth(ctx, parent)
		if err != nil {
			return nil, err
		}
		if depth >= models.MaxCommentDepth {
			return nil, models.NewDepthExceededError()
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Depth walks the parent chain upward, counting hops. The walk passes
// through soft-deleted ancestors and is capped so a corrupt parent cycle
// cannot loop forever.
func (s *CommentService) Depth(ctx context.Context, comment *models.Comment) (int, error) {
	depth := 0
	current := comment
	for current.ParentID != nil && depth < models.MaxCommentDepth+1 {
		parent, err := s.commentRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return 0, err
		}
		depth++
		current = parent
	}
	return depth, nil
}

// ListComments returns the post's active comments in thread order.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListActiveByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes the comment. The row stays so replies keep
// their ancestry; repeated deletes are no-ops.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.SoftDelete(ctx, commentID, comment.PostID)
}

func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, 0, err
	}
	if comment.IsDeleted {
		return false, 0, models.NewNotFoundError("Comment", commentID)
	}
	return s.commentRepo.ToggleLike(ctx, userID, commentID)
}
