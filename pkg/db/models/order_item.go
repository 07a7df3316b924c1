package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem freezes one cart line at the moment of order creation.
// TotalPrice = quantity x unit price captured then; immutable afterward.
// The product reference only serves display joins.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity   int             `gorm:"column:quantity;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	Product    *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
