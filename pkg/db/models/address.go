package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a delivery destination owned by a user.
type Address struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	AddressLine string    `gorm:"column:address_line;not null"`
	City        *string   `gorm:"column:city"`
	State       *string   `gorm:"column:state"`
	Pincode     *string   `gorm:"column:pincode"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
