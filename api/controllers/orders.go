package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/orders"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
)

type createOrderPayload struct {
	AddressID string `json:"addressId" validate:"required"`
}

type confirmPaymentPayload struct {
	OrderID string `json:"orderId" validate:"required"`
}

// CreateOrder assembles the caller's cart into a pending order.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload createOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := uuid.Parse(payload.AddressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid address id"))
			return
		}

		created, err := svc.CreateOrderFromCart(ctx, middleware.UserIDFromContext(ctx), addressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ConfirmPayment reports the order's payment status to the client. Whether it
// may mutate state is a policy decision owned by the orders service.
func ConfirmPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload confirmPaymentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid order id"))
			return
		}

		status, err := svc.ClientConfirm(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"message": "payment status recorded",
			"status":  string(status),
		})
	}
}

// ListOrders returns the caller's order history, newest first.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "orders service unavailable"))
			return
		}

		history, err := svc.ListUserOrders(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

// GetOrder returns one order with its nested items.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.GetOrder(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
