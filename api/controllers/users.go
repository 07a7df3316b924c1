package controllers

import (
	"net/http"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/users"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
)

type updateProfilePayload struct {
	Name      *string `json:"name,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	DOB       *string `json:"dob,omitempty"`
	AddressID *string `json:"addressId,omitempty"`
}

// GetProfile returns the authenticated user's profile.
func GetProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "users service unavailable"))
			return
		}

		profile, err := svc.GetProfile(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func UpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto := users.UpdateProfileDTO{
			Name:    payload.Name,
			Contact: payload.Contact,
			DOB:     payload.DOB,
		}
		if payload.AddressID != nil {
			addressID, err := uuid.Parse(*payload.AddressID)
			if err != nil {
				responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid address id"))
				return
			}
			dto.AddressID = &addressID
		}

		profile, err := svc.UpdateProfile(ctx, middleware.UserIDFromContext(ctx), dto)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
