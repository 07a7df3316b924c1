package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/feastlane/feastlane-backend/internal/orders"
	"github.com/feastlane/feastlane-backend/pkg/config"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/feastlane/feastlane-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
)

const checkoutLineItemName = "Food Order"

// Service brokers payment for freshly assembled orders: hosted checkout
// sessions, direct payment intents, and cash-on-delivery placement.
type Service interface {
	CreateCheckoutSession(ctx context.Context, userID, addressID uuid.UUID) (string, error)
	PlaceCashOnDelivery(ctx context.Context, userID, addressID uuid.UUID) (*orders.CreatedOrder, error)
	CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (string, error)
}

// ServiceParams wires the checkout service dependencies.
type ServiceParams struct {
	Orders      orders.Service
	Stripe      StripeCheckoutClient
	Checkout    config.CheckoutConfig
	FrontendURL string
	Metrics     *metrics.CheckoutMetrics
	Logger      *logger.Logger
}

type service struct {
	orders      orders.Service
	stripe      StripeCheckoutClient
	cfg         config.CheckoutConfig
	frontendURL string
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

// NewService builds the checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if params.Stripe == nil {
		return nil, fmt.Errorf("stripe checkout client required")
	}
	if params.FrontendURL == "" {
		return nil, fmt.Errorf("frontend url required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		orders:      params.Orders,
		stripe:      params.Stripe,
		cfg:         params.Checkout,
		frontendURL: strings.TrimRight(params.FrontendURL, "/"),
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

// CreateCheckoutSession assembles the order first, then opens a hosted
// checkout session for its frozen total. The order stays pending until the
// webhook confirms payment; an abandoned session leaves it pending.
func (s *service) CreateCheckoutSession(ctx context.Context, userID, addressID uuid.UUID) (string, error) {
	created, err := s.orders.CreateOrderFromCart(ctx, userID, addressID)
	if err != nil {
		return "", err
	}
	s.metrics.IncOrderCreated(string(enums.PaymentMethodOnline))

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.currency()),
					UnitAmount: stripe.Int64(toMinorUnit(created.TotalPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(checkoutLineItemName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/order/%s", s.frontendURL, created.OrderID)),
		CancelURL:  stripe.String(s.frontendURL + "/cart"),
	}
	params.AddMetadata("orderId", created.OrderID.String())
	params.AddMetadata("userId", userID.String())

	sess, err := s.stripe.CreateSession(ctx, params)
	if err != nil {
		ctx = s.logg.WithOrderID(ctx, created.OrderID.String())
		s.logg.Error(ctx, "creating stripe checkout session", err)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating checkout session")
	}
	return sess.URL, nil
}

// PlaceCashOnDelivery assembles the order without touching the payment
// processor. Settlement happens at delivery; the order is marked paid
// immediately only when the COD policy flag says so.
func (s *service) PlaceCashOnDelivery(ctx context.Context, userID, addressID uuid.UUID) (*orders.CreatedOrder, error) {
	created, err := s.orders.CreateOrderFromCart(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderCreated(string(enums.PaymentMethodCOD))

	if s.cfg.CODMarkPaid {
		if err := s.orders.ConfirmPayment(ctx, created.OrderID); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// CreatePaymentIntent opens a payment intent for an existing order's frozen
// total and returns the client secret.
func (s *service) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (string, error) {
	amount, err := s.orders.OrderAmount(ctx, orderID)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnit(amount)),
		Currency: stripe.String(s.currency()),
	}
	params.AddMetadata("orderId", orderID.String())

	intent, err := s.stripe.CreatePaymentIntent(ctx, params)
	if err != nil {
		ctx = s.logg.WithOrderID(ctx, orderID.String())
		s.logg.Error(ctx, "creating stripe payment intent", err)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating payment intent")
	}
	return intent.ClientSecret, nil
}

func (s *service) currency() string {
	currency := strings.TrimSpace(strings.ToLower(s.cfg.Currency))
	if currency == "" {
		currency = "inr"
	}
	return currency
}

// toMinorUnit converts a decimal amount to the processor's minor currency
// unit: multiply by 100 and round to the nearest integer.
func toMinorUnit(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
