package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents one catalog listing. Price is the authoritative value
// used when a cart is converted into an order.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Description  *string         `gorm:"column:description"`
	ImageURL     *string         `gorm:"column:image_url"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Cuisine      *string         `gorm:"column:cuisine;index"`
	Tags         pq.StringArray  `gorm:"column:tags;type:text[]"`
	Rating       *float64        `gorm:"column:rating;type:numeric(3,2)"`
	Stock        *int            `gorm:"column:stock"`
	Availability bool            `gorm:"column:availability;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
