package wishlist

import (
	"context"
	"errors"

	"github.com/feastlane/feastlane-backend/pkg/db"
	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository owns wishlist persistence. One row per (user, product).
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a wishlist repository bound to the provided DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Add inserts the (user, product) pair. A duplicate add is a no-op.
func (r *Repository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	item := models.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
	}
	err := r.db.WithContext(ctx).Create(&item).Error
	if err != nil && (db.IsUniqueViolation(err, "") || errors.Is(err, gorm.ErrDuplicatedKey)) {
		return nil
	}
	return err
}

func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
