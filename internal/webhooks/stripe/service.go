package stripewebhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/feastlane/feastlane-backend/internal/orders"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/feastlane/feastlane-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
)

const (
	outcomeConfirmed = "confirmed"
	outcomeIgnored   = "ignored"
	outcomeFailed    = "failed"
)

// ServiceParams wires the webhook service dependencies.
type ServiceParams struct {
	Orders  orders.Service
	Logger  *logger.Logger
	Metrics *metrics.CheckoutMetrics
}

// Service routes verified Stripe events into the idempotent order
// confirmation path.
type Service struct {
	orders  orders.Service
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		orders:  params.Orders,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// HandleEvent processes an already signature-verified event. Event types
// outside the checkout lifecycle are ignored.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			s.metrics.IncWebhookEvent(string(event.Type), outcomeFailed)
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode checkout session event")
		}
		return s.confirmFromSession(ctx, event, &session)
	default:
		s.metrics.IncWebhookEvent(string(event.Type), outcomeIgnored)
		return nil
	}
}

func (s *Service) confirmFromSession(ctx context.Context, event *stripe.Event, session *stripe.CheckoutSession) error {
	raw, ok := session.Metadata["orderId"]
	if !ok || raw == "" {
		// not one of ours; nothing to confirm
		s.logg.Warn(ctx, "checkout session completed without orderId metadata")
		s.metrics.IncWebhookEvent(string(event.Type), outcomeIgnored)
		return nil
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		s.metrics.IncWebhookEvent(string(event.Type), outcomeFailed)
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse orderId metadata")
	}

	ctx = s.logg.WithOrderID(ctx, orderID.String())
	if err := s.orders.ConfirmPayment(ctx, orderID); err != nil {
		s.metrics.IncWebhookEvent(string(event.Type), outcomeFailed)
		return err
	}

	s.logg.Info(ctx, fmt.Sprintf("order confirmed from stripe event %s", event.ID))
	s.metrics.IncWebhookEvent(string(event.Type), outcomeConfirmed)
	return nil
}
