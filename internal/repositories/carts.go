package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/luxe/internal/models"
)

var cartLineKey = []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "size"}}

// CartRepository persists carts as one marker row per user plus one row per
// (product, size) line. Every mutation is a single transaction and merges go
// through the unique line key, so concurrent requests for the same user
// cannot duplicate a line or lose an increment.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddLine creates the cart if needed and adds quantity to the matching line,
// appending the line when it does not exist.
func (r *CartRepository) AddLine(ctx context.Context, userID uuid.UUID, productID, size string, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCart(tx, userID); err != nil {
			return err
		}

		line := models.CartLine{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Quantity:  quantity,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: cartLineKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&line).Error
	})
}

// SetLineQuantity overwrites the quantity of the matching line. It fails with
// ErrCartNotFound when the user has no cart and is a no-op when the line is
// absent.
func (r *CartRepository) SetLineQuantity(ctx context.Context, userID uuid.UUID, productID, size string, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(lockingClause(tx)...).First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		return tx.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
			Update("quantity", quantity).Error
	})
}

// RemoveLine deletes the matching line if present.
func (r *CartRepository) RemoveLine(ctx context.Context, userID uuid.UUID, productID, size string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		Delete(&models.CartLine{}).Error
}

// Lines returns the user's lines in insertion order. A user without a cart has
// no lines.
func (r *CartRepository) Lines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func ensureCart(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Cart{UserID: userID}).Error
}

// lockingClause takes a row lock on dialects that support it.
func lockingClause(tx *gorm.DB) []clause.Expression {
	if tx.Dialector.Name() == "postgres" {
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
	return nil
}
