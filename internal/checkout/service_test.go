package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/feastlane/feastlane-backend/internal/orders"
	"github.com/feastlane/feastlane-backend/pkg/config"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
)

type stubOrdersService struct {
	created      *orders.CreatedOrder
	createErr    error
	confirmCalls []uuid.UUID
	confirmErr   error
	amount       decimal.Decimal
	amountErr    error
}

func (s *stubOrdersService) CreateOrderFromCart(ctx context.Context, userID, addressID uuid.UUID) (*orders.CreatedOrder, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubOrdersService) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	s.confirmCalls = append(s.confirmCalls, orderID)
	return s.confirmErr
}

func (s *stubOrdersService) ClientConfirm(ctx context.Context, orderID uuid.UUID) (enums.OrderStatus, error) {
	panic("not implemented")
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.OrderDetail, error) {
	panic("not implemented")
}

func (s *stubOrdersService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderDetail, error) {
	panic("not implemented")
}

func (s *stubOrdersService) OrderAmount(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return s.amount, s.amountErr
}

type stubStripeClient struct {
	sessionParams *stripe.CheckoutSessionParams
	sessionErr    error
	intentParams  *stripe.PaymentIntentParams
	intentErr     error
}

func (s *stubStripeClient) CreateSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.sessionParams = params
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	return &stripe.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_test_123"}, nil
}

func (s *stubStripeClient) CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.intentParams = params
	if s.intentErr != nil {
		return nil, s.intentErr
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_test_secret"}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newCheckoutService(t *testing.T, ordersSvc orders.Service, client StripeCheckoutClient, cfg config.CheckoutConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Orders:      ordersSvc,
		Stripe:      client,
		Checkout:    cfg,
		FrontendURL: "http://localhost:5173",
		Logger:      testLogger(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateCheckoutSessionBuildsStripeParams(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	ordersSvc := &stubOrdersService{
		created: &orders.CreatedOrder{OrderID: orderID, TotalPrice: decimal.NewFromFloat(599.99)},
	}
	client := &stubStripeClient{}
	svc := newCheckoutService(t, ordersSvc, client, config.CheckoutConfig{Currency: "inr"})

	url, err := svc.CreateCheckoutSession(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("create checkout session: %v", err)
	}
	if url != "https://checkout.stripe.com/pay/cs_test_123" {
		t.Fatalf("unexpected redirect url %s", url)
	}

	params := client.sessionParams
	if params == nil {
		t.Fatal("expected stripe session params")
	}
	if len(params.LineItems) != 1 {
		t.Fatalf("expected a single line item, got %d", len(params.LineItems))
	}
	line := params.LineItems[0]
	if got := *line.PriceData.UnitAmount; got != 59999 {
		t.Fatalf("expected unit amount 59999, got %d", got)
	}
	if got := *line.PriceData.Currency; got != "inr" {
		t.Fatalf("expected currency inr, got %s", got)
	}
	if got := *line.PriceData.ProductData.Name; got != "Food Order" {
		t.Fatalf("unexpected line item name %s", got)
	}
	if got := params.Metadata["orderId"]; got != orderID.String() {
		t.Fatalf("expected orderId metadata, got %q", got)
	}
	if got := params.Metadata["userId"]; got != userID.String() {
		t.Fatalf("expected userId metadata, got %q", got)
	}
	wantSuccess := "http://localhost:5173/order/" + orderID.String()
	if got := *params.SuccessURL; got != wantSuccess {
		t.Fatalf("expected success url %s, got %s", wantSuccess, got)
	}
	if got := *params.CancelURL; got != "http://localhost:5173/cart" {
		t.Fatalf("unexpected cancel url %s", got)
	}
}

func TestCreateCheckoutSessionRoundsMinorUnits(t *testing.T) {
	ordersSvc := &stubOrdersService{
		created: &orders.CreatedOrder{OrderID: uuid.New(), TotalPrice: decimal.NewFromFloat(100.005)},
	}
	client := &stubStripeClient{}
	svc := newCheckoutService(t, ordersSvc, client, config.CheckoutConfig{})

	if _, err := svc.CreateCheckoutSession(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}
	if got := *client.sessionParams.LineItems[0].PriceData.UnitAmount; got != 10001 {
		t.Fatalf("expected rounded amount 10001, got %d", got)
	}
	// empty currency falls back to the default
	if got := *client.sessionParams.LineItems[0].PriceData.Currency; got != "inr" {
		t.Fatalf("expected default currency inr, got %s", got)
	}
}

func TestCreateCheckoutSessionAssemblyFailureShortCircuits(t *testing.T) {
	ordersSvc := &stubOrdersService{createErr: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	client := &stubStripeClient{}
	svc := newCheckoutService(t, ordersSvc, client, config.CheckoutConfig{})

	_, err := svc.CreateCheckoutSession(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.sessionParams != nil {
		t.Fatal("stripe must not be called when assembly fails")
	}
}

func TestCreateCheckoutSessionStripeFailure(t *testing.T) {
	ordersSvc := &stubOrdersService{
		created: &orders.CreatedOrder{OrderID: uuid.New(), TotalPrice: decimal.NewFromInt(100)},
	}
	client := &stubStripeClient{sessionErr: errors.New("stripe down")}
	svc := newCheckoutService(t, ordersSvc, client, config.CheckoutConfig{})

	_, err := svc.CreateCheckoutSession(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestPlaceCashOnDeliveryDefaultStaysPending(t *testing.T) {
	orderID := uuid.New()
	ordersSvc := &stubOrdersService{
		created: &orders.CreatedOrder{OrderID: orderID, TotalPrice: decimal.NewFromInt(350)},
	}
	svc := newCheckoutService(t, ordersSvc, &stubStripeClient{}, config.CheckoutConfig{})

	created, err := svc.PlaceCashOnDelivery(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("place cod order: %v", err)
	}
	if created.OrderID != orderID {
		t.Fatalf("unexpected order id %s", created.OrderID)
	}
	if len(ordersSvc.confirmCalls) != 0 {
		t.Fatal("cod order must stay pending by default")
	}
}

func TestPlaceCashOnDeliveryMarkPaidPolicy(t *testing.T) {
	orderID := uuid.New()
	ordersSvc := &stubOrdersService{
		created: &orders.CreatedOrder{OrderID: orderID, TotalPrice: decimal.NewFromInt(350)},
	}
	svc := newCheckoutService(t, ordersSvc, &stubStripeClient{}, config.CheckoutConfig{CODMarkPaid: true})

	if _, err := svc.PlaceCashOnDelivery(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("place cod order: %v", err)
	}
	if len(ordersSvc.confirmCalls) != 1 || ordersSvc.confirmCalls[0] != orderID {
		t.Fatalf("expected confirm for %s, got %v", orderID, ordersSvc.confirmCalls)
	}
}

func TestCreatePaymentIntentUsesFrozenTotal(t *testing.T) {
	orderID := uuid.New()
	ordersSvc := &stubOrdersService{amount: decimal.NewFromFloat(499.50)}
	client := &stubStripeClient{}
	svc := newCheckoutService(t, ordersSvc, client, config.CheckoutConfig{Currency: "inr"})

	secret, err := svc.CreatePaymentIntent(context.Background(), orderID)
	if err != nil {
		t.Fatalf("create payment intent: %v", err)
	}
	if secret != "pi_test_secret" {
		t.Fatalf("unexpected client secret %s", secret)
	}
	if got := *client.intentParams.Amount; got != 49950 {
		t.Fatalf("expected amount 49950, got %d", got)
	}
	if got := client.intentParams.Metadata["orderId"]; got != orderID.String() {
		t.Fatalf("expected orderId metadata, got %q", got)
	}
}

func TestCreatePaymentIntentUnknownOrder(t *testing.T) {
	ordersSvc := &stubOrdersService{amountErr: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	svc := newCheckoutService(t, ordersSvc, &stubStripeClient{}, config.CheckoutConfig{})

	_, err := svc.CreatePaymentIntent(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
