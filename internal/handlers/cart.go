package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/middleware"
	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/services"
)

// CartHandler exposes the authenticated user's cart.
type CartHandler struct {
	carts    *services.CartService
	validate *validator.Validate
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(carts *services.CartService, validate *validator.Validate) *CartHandler {
	return &CartHandler{carts: carts, validate: validate}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func cartResponse(message string, lines []models.CartLine) fiber.Map {
	resp := fiber.Map{
		"success": true,
		"items":   lines,
	}
	if message != "" {
		resp["message"] = message
	}
	return resp
}

// Get returns the cart lines.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	lines, err := h.carts.Get(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(cartResponse("", lines))
}

// Add merges an item into the cart. Quantity defaults to 1.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	var req addCartItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	lines, err := h.carts.Add(c.UserContext(), user.ID, services.CartLineInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  quantity,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(cartResponse("Added to cart", lines))
}

// Update replaces the quantity of a cart line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	var req updateCartItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	lines, err := h.carts.SetQuantity(c.UserContext(), user.ID, services.CartLineInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(cartResponse("Cart updated", lines))
}

// Remove deletes the line for :product_id and the size query parameter.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return mapError(services.ErrUnauthenticated)
	}

	lines, err := h.carts.Remove(c.UserContext(), user.ID, c.Params("product_id"), c.Query("size"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(cartResponse("Removed from cart", lines))
}
