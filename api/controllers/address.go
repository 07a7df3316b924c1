package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/address"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
)

type addAddressPayload struct {
	AddressLine string  `json:"addressLine" validate:"required"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Pincode     *string `json:"pincode,omitempty"`
}

// AddAddress stores a new delivery address for the caller.
func AddAddress(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "address service unavailable"))
			return
		}

		var payload addAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.AddAddress(ctx, middleware.UserIDFromContext(ctx), address.NewAddressInput{
			AddressLine: payload.AddressLine,
			City:        payload.City,
			State:       payload.State,
			Pincode:     payload.Pincode,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListAddresses returns the caller's saved addresses.
func ListAddresses(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "address service unavailable"))
			return
		}

		list, err := svc.ListAddresses(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RemoveAddress deletes one of the caller's addresses.
func RemoveAddress(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "address service unavailable"))
			return
		}

		addressID, err := validators.ParsePathUUID(chi.URLParam(r, "addressId"), "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveAddress(ctx, middleware.UserIDFromContext(ctx), addressID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
