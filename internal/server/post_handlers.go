package server

import (
	"smashboard/internal/middleware"
	"smashboard/internal/models"
	"smashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	IsDraft  bool     `json:"is_draft"`
}

type updatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsDraft  bool   `json:"is_draft"`
}

type attachTagsRequest struct {
	Tags []string `json:"tags"`
}

// GetPosts lists published posts, pinned first, newest next.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:    p.Limit,
		Offset:   p.Offset,
		Category: c.Query("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// SearchPosts searches published posts by title and content.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.SearchPosts(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost returns one post with rendered HTML and records the view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.ViewPost(c.Context(), postID, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost creates a post (or draft) for the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: middleware.CurrentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsDraft:  req.IsDraft,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits the authenticated user's own post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   middleware.CurrentUserID(c),
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IsDraft:  req.IsDraft,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes the authenticated user's own post and its dependents.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.postService.DeletePost(c.Context(), middleware.CurrentUserID(c), postID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TogglePostLike flips the caller's like on a post.
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	liked, likeCount, err := s.postService.ToggleLike(c.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked, "like_count": likeCount})
}

// TogglePostBookmark flips the caller's bookmark on a post.
func (s *Server) TogglePostBookmark(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	bookmarked, err := s.postService.ToggleBookmark(c.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarked": bookmarked})
}

// AttachTags adds tags to the caller's own post.
func (s *Server) AttachTags(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req attachTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	tags, err := s.postService.AttachTags(c.Context(), middleware.CurrentUserID(c), postID, req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// DetachTag removes a tag from the caller's own post.
func (s *Server) DetachTag(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := parseID(c, "tagId")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.postService.DetachTag(c.Context(), middleware.CurrentUserID(c), postID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTags lists every tag, most used first.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.postService.ListTags(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}
