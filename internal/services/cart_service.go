package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/repositories"
)

// CartStore is the persistence CartService needs.
type CartStore interface {
	AddLine(ctx context.Context, userID uuid.UUID, productID, size string, quantity int) error
	SetLineQuantity(ctx context.Context, userID uuid.UUID, productID, size string, quantity int) error
	RemoveLine(ctx context.Context, userID uuid.UUID, productID, size string) error
	Lines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
}

// CartLineInput identifies a cart line and the quantity to apply to it.
type CartLineInput struct {
	ProductID string
	Size      string
	Quantity  int
}

// CartService manages a user's cart lines keyed by (product, size).
type CartService struct {
	store CartStore
}

// NewCartService creates a new CartService.
func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// Add merges quantity into the line for (product, size) and returns the
// updated cart.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, in CartLineInput) ([]models.CartLine, error) {
	if err := validateLine(in, true); err != nil {
		return nil, err
	}
	if err := s.store.AddLine(ctx, userID, in.ProductID, in.Size, in.Quantity); err != nil {
		return nil, err
	}
	return s.store.Lines(ctx, userID)
}

// SetQuantity replaces the quantity of the matching line.
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, in CartLineInput) ([]models.CartLine, error) {
	if err := validateLine(in, true); err != nil {
		return nil, err
	}
	if err := s.store.SetLineQuantity(ctx, userID, in.ProductID, in.Size, in.Quantity); err != nil {
		if errors.Is(err, repositories.ErrCartNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return s.store.Lines(ctx, userID)
}

// Remove deletes the line for (product, size). Removing a missing line
// succeeds.
func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, productID, size string) ([]models.CartLine, error) {
	if err := validateLine(CartLineInput{ProductID: productID, Size: size}, false); err != nil {
		return nil, err
	}
	if err := s.store.RemoveLine(ctx, userID, productID, size); err != nil {
		return nil, err
	}
	return s.store.Lines(ctx, userID)
}

// Get returns the cart lines in insertion order.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return s.store.Lines(ctx, userID)
}

func validateLine(in CartLineInput, withQuantity bool) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return ErrInvalidInput
	}
	if withQuantity && in.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
