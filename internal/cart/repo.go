package cart

import (
	"context"
	"errors"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository owns cart line persistence. One row per (user, product).
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Upsert sets the quantity for the (user, product) line, creating it when
// missing.
func (r *Repository) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	switch {
	case err == nil:
		line.Quantity = quantity
		if err := r.db.WithContext(ctx).Model(&line).Update("quantity", quantity).Error; err != nil {
			return nil, err
		}
		return &line, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := r.db.WithContext(ctx).Create(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	default:
		return nil, err
	}
}

// Delete removes one cart line owned by the user. Returns the number of rows
// removed so callers can 404 on foreign or missing lines.
func (r *Repository) Delete(ctx context.Context, userID, cartItemID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
