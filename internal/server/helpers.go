package server

import (
	"errors"

	"smashboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}

// respondError maps application error codes onto HTTP statuses and writes
// the standardized error body.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeValidation, models.CodeDepthExceeded:
			status = fiber.StatusBadRequest
		case models.CodeForbidden:
			status = fiber.StatusForbidden
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		}
	}

	return models.RespondWithError(c, status, err)
}
