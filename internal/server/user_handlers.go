package server

import (
	"smashboard/internal/middleware"
	"smashboard/internal/models"
	"smashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// GetMyProfile returns the authenticated user with their posts.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, posts, err := s.userService.GetProfile(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "posts": posts})
}

// UpdateMyProfile updates the authenticated user's bio and avatar.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: middleware.CurrentUserID(c),
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile returns a public profile with published posts.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, posts, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "posts": posts})
}

// FollowUser adds a follow edge from the caller to the target.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.userService.Follow(c.Context(), middleware.CurrentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser removes the caller's follow edge to the target.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.userService.Unfollow(c.Context(), middleware.CurrentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetMyBookmarks lists the caller's bookmarked posts.
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	posts, err := s.userService.Bookmarks(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
