package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart marks that a user owns a cart. Its lines live in CartLine.
type Cart struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is one (product, size) entry of a cart. The pair is unique per user.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line_key,priority:1" json:"-"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:2" json:"product_id"`
	Size      string    `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:3" json:"size"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
