package server

import (
	"smashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetHotPosts returns the hottest published posts.
func (s *Server) GetHotPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.recommendService.HotPosts(c.Context(), p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetRecommendedPosts returns the personalized feed. Anonymous callers get
// the hot ranking.
func (s *Server) GetRecommendedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.recommendService.Recommend(c.Context(), middleware.CurrentUserID(c), p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetSimilarUsers returns users most similar to the caller.
func (s *Server) GetSimilarUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	users, err := s.recommendService.SimilarUsers(c.Context(), middleware.CurrentUserID(c), p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetTagAffinity returns the caller's per-tag interest weights.
func (s *Server) GetTagAffinity(c *fiber.Ctx) error {
	affinity, err := s.recommendService.TagAffinity(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"affinity": affinity})
}
