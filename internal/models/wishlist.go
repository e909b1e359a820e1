package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry records that a user favorited a product.
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_entry_key,priority:1"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_wishlist_entry_key,priority:2"`
	CreatedAt time.Time
}
