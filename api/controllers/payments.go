package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/checkout"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
)

type createPaymentIntentPayload struct {
	OrderID string `json:"orderId" validate:"required"`
}

// CheckoutSession assembles an order and returns the hosted checkout URL.
func CheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "checkout service unavailable"))
			return
		}

		addressID, err := validators.ParsePathUUID(chi.URLParam(r, "addressId"), "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		url, err := svc.CreateCheckoutSession(ctx, middleware.UserIDFromContext(ctx), addressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}

// CODOrder places a cash-on-delivery order with no processor involvement.
func CODOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "checkout service unavailable"))
			return
		}

		addressID, err := validators.ParsePathUUID(chi.URLParam(r, "addressId"), "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.PlaceCashOnDelivery(ctx, middleware.UserIDFromContext(ctx), addressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"message": "order placed",
			"orderId": created.OrderID,
		})
	}
}

// CreatePaymentIntent returns a client secret for an existing pending order.
func CreatePaymentIntent(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload createPaymentIntentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid order id"))
			return
		}

		clientSecret, err := svc.CreatePaymentIntent(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"clientSecret": clientSecret})
	}
}
