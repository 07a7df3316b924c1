package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/internal/orders"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubOrdersService struct {
	created       *orders.CreatedOrder
	createErr     error
	confirmed     enums.OrderStatus
	confirmErr    error
	detail        *orders.OrderDetail
	detailErr     error
	history       []orders.OrderDetail
	lastUserID    uuid.UUID
	lastOrderID   uuid.UUID
	lastAddressID uuid.UUID
}

func (s *stubOrdersService) CreateOrderFromCart(ctx context.Context, userID, addressID uuid.UUID) (*orders.CreatedOrder, error) {
	s.lastUserID = userID
	s.lastAddressID = addressID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubOrdersService) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	s.lastOrderID = orderID
	return s.confirmErr
}

func (s *stubOrdersService) ClientConfirm(ctx context.Context, orderID uuid.UUID) (enums.OrderStatus, error) {
	s.lastOrderID = orderID
	if s.confirmErr != nil {
		return "", s.confirmErr
	}
	return s.confirmed, nil
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.OrderDetail, error) {
	s.lastOrderID = orderID
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func (s *stubOrdersService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderDetail, error) {
	s.lastUserID = userID
	return s.history, nil
}

func (s *stubOrdersService) OrderAmount(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, fmt.Errorf("not used")
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestCreateOrderReturnsOrderSummary(t *testing.T) {
	userID := uuid.New()
	addressID := uuid.New()
	svc := &stubOrdersService{
		created: &orders.CreatedOrder{
			OrderID:    uuid.New(),
			TotalPrice: decimal.RequireFromString("600.00"),
		},
	}

	body, _ := json.Marshal(map[string]string{"addressId": addressID.String()})
	req := authedRequest(http.MethodPost, "/order/create-order", body, userID)
	rec := httptest.NewRecorder()
	CreateOrder(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastUserID != userID {
		t.Fatalf("expected user id from context, got %s", svc.lastUserID)
	}

	var envelope types.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["totalPrice"] != "600" && data["totalPrice"] != "600.00" {
		t.Fatalf("unexpected total %v", data["totalPrice"])
	}
}

func TestCreateOrderEmptyCartIsBadRequest(t *testing.T) {
	svc := &stubOrdersService{
		createErr: apperrors.New(apperrors.CodeValidation, "cart is empty"),
	}

	body, _ := json.Marshal(map[string]string{"addressId": uuid.NewString()})
	req := authedRequest(http.MethodPost, "/order/create-order", body, uuid.New())
	rec := httptest.NewRecorder()
	CreateOrder(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope types.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "cart is empty" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestCreateOrderRejectsMalformedAddressID(t *testing.T) {
	svc := &stubOrdersService{}

	body, _ := json.Marshal(map[string]string{"addressId": "nope"})
	req := authedRequest(http.MethodPost, "/order/create-order", body, uuid.New())
	rec := httptest.NewRecorder()
	CreateOrder(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConfirmPaymentReportsStatus(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{confirmed: enums.OrderStatusPending}

	body, _ := json.Marshal(map[string]string{"orderId": orderID.String()})
	req := authedRequest(http.MethodPost, "/order/confirm-payment", body, uuid.New())
	rec := httptest.NewRecorder()
	ConfirmPayment(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastOrderID != orderID {
		t.Fatalf("expected order id forwarded, got %s", svc.lastOrderID)
	}

	var envelope types.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["status"] != string(enums.OrderStatusPending) {
		t.Fatalf("unexpected status %v", data["status"])
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubOrdersService{
		detailErr: apperrors.New(apperrors.CodeNotFound, "order not found"),
	}

	router := chi.NewRouter()
	router.Get("/order/{orderId}", GetOrder(svc, nil))

	req := authedRequest(http.MethodGet, "/order/"+uuid.NewString(), nil, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListOrdersReturnsEmptyArray(t *testing.T) {
	svc := &stubOrdersService{history: []orders.OrderDetail{}}

	req := authedRequest(http.MethodGet, "/order", nil, uuid.New())
	rec := httptest.NewRecorder()
	ListOrders(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []orders.OrderDetail `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data == nil {
		t.Fatalf("expected [] not null")
	}
}
