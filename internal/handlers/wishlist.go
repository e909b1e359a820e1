package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/middleware"
	"github.com/example/luxe/internal/services"
)

// WishlistHandler exposes the authenticated user's wishlist.
type WishlistHandler struct {
	wishlists *services.WishlistService
	validate  *validator.Validate
}

// NewWishlistHandler constructs a WishlistHandler.
func NewWishlistHandler(wishlists *services.WishlistService, validate *validator.Validate) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, validate: validate}
}

type wishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Get returns the wishlisted product ids.
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	ids, err := h.wishlists.Get(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "product_ids": ids})
}

// Add puts a product in the wishlist.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	var req wishlistItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	ids, err := h.wishlists.Add(c.UserContext(), user.ID, req.ProductID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Added to wishlist", "product_ids": ids})
}

// Remove takes :product_id out of the wishlist.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	ids, err := h.wishlists.Remove(c.UserContext(), user.ID, c.Params("product_id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Removed from wishlist", "product_ids": ids})
}
