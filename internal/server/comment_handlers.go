package server

import (
	"smashboard/internal/middleware"
	"smashboard/internal/models"
	"smashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// GetComments lists a post's active comments in thread order.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment adds a comment or reply to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		PostID:   postID,
		AuthorID: middleware.CurrentUserID(c),
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits the caller's own comment.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    middleware.CurrentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment soft-deletes the caller's own comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.commentService.DeleteComment(c.Context(), middleware.CurrentUserID(c), commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	liked, likeCount, err := s.commentService.ToggleLike(c.Context(), middleware.CurrentUserID(c), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked, "like_count": likeCount})
}
