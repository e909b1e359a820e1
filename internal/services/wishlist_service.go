package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// WishlistStore keeps a set of product ids per user.
type WishlistStore interface {
	Add(ctx context.Context, userID uuid.UUID, productID string) error
	Remove(ctx context.Context, userID uuid.UUID, productID string) error
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// WishlistService exposes idempotent add/remove over a WishlistStore.
type WishlistService struct {
	store WishlistStore
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(store WishlistStore) *WishlistService {
	return &WishlistService{store: store}
}

// Add puts productID in the user's wishlist and returns the resulting set.
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, productID string) ([]string, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrInvalidInput
	}
	if err := s.store.Add(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.store.ProductIDs(ctx, userID)
}

// Remove takes productID out of the user's wishlist.
func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, productID string) ([]string, error) {
	if err := s.store.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.store.ProductIDs(ctx, userID)
}

// Get returns the user's wishlist.
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.store.ProductIDs(ctx, userID)
}
