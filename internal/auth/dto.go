package auth

import (
	"github.com/feastlane/feastlane-backend/internal/users"
)

// SignupRequest captures the payload required to register a new account.
// The address block is optional; when present it becomes the user's first
// saved delivery address.
type SignupRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Contact  *string `json:"contact,omitempty"`
	DOB      *string `json:"dob,omitempty"`

	AddressLine *string `json:"addressLine,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Pincode     *string `json:"pincode,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and user produced by signup or login.
type AuthResponse struct {
	AccessToken string         `json:"accessToken"`
	User        *users.UserDTO `json:"user"`
}
