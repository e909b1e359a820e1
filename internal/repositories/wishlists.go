package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/luxe/internal/models"
)

// WishlistRepository stores wishlist membership as one row per
// (user, product). Inserting an existing pair is ignored by the unique key.
type WishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new WishlistRepository.
func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts productID into the user's set.
func (r *WishlistRepository) Add(ctx context.Context, userID uuid.UUID, productID string) error {
	entry := models.WishlistEntry{UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// Remove deletes productID from the user's set if present.
func (r *WishlistRepository) Remove(ctx context.Context, userID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistEntry{}).Error
}

// ProductIDs returns the user's set in insertion order.
func (r *WishlistRepository) ProductIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids := []string{}
	if err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
