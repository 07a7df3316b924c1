package users

import (
	"time"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Contact   *string    `json:"contact,omitempty"`
	DOB       *string    `json:"dob,omitempty"`
	AddressID *uuid.UUID `json:"addressId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Contact      *string
	DOB          *string
}

// UpdateProfileDTO carries the optional profile fields a user may change.
// Nil pointers mean "leave as is".
type UpdateProfileDTO struct {
	Name      *string
	Contact   *string
	DOB       *string
	AddressID *uuid.UUID
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Contact:   u.Contact,
		DOB:       u.DOB,
		AddressID: u.AddressID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Contact:      c.Contact,
		DOB:          c.DOB,
	}
}
