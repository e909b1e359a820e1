package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query params. Limit is capped at 100.
func ParsePagination(c *fiber.Ctx) Pagination {
	return NewPagination(c.Query("page"), c.Query("limit"))
}

// NewPagination builds a Pagination from raw page and limit values, falling
// back to page 1 and the default limit for missing or invalid input.
func NewPagination(page, limit string) Pagination {
	p := parsePositive(page, 1)
	l := parsePositive(limit, defaultPageLimit)
	if l > maxPageLimit {
		l = maxPageLimit
	}

	return Pagination{
		Page:   p,
		Limit:  l,
		Offset: (p - 1) * l,
	}
}

func parsePositive(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
