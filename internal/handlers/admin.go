package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/repositories"
	"github.com/example/luxe/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	users *repositories.UserRepository
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(users *repositories.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns registered users, newest first. Password hashes are
// never serialized.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	users, total, err := h.users.List(c.UserContext(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
