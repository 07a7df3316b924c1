package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feastlane/feastlane-backend/pkg/enums"
)

// Order is the durable result of converting a cart at checkout time.
// TotalPrice is a snapshot computed once at creation; it is never
// recomputed from the catalog afterward.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	AddressID  uuid.UUID         `gorm:"column:address_id;type:uuid;not null"`
	TotalPrice decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
