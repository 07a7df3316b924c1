package orders

import (
	"context"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the order workflow.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LoadCartLines(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	LoadProductPrices(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (int64, error)
}
