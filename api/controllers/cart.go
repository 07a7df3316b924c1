package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/cart"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
)

type setCartItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// GetCart returns the caller's cart lines with product details.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "cart service unavailable"))
			return
		}

		lines, err := svc.GetCart(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

// SetCartItem creates or replaces the caller's cart line for a product.
func SetCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload setCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid product id"))
			return
		}

		line, err := svc.SetItem(ctx, middleware.UserIDFromContext(ctx), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, line)
	}
}

// RemoveCartItem deletes one cart line owned by the caller.
func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "cart service unavailable"))
			return
		}

		cartItemID, err := validators.ParsePathUUID(chi.URLParam(r, "cartId"), "cartId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveItem(ctx, middleware.UserIDFromContext(ctx), cartItemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
