package webhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/feastlane/feastlane-backend/api/responses"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/feastlane/feastlane-backend/pkg/redis"
	"github.com/stripe/stripe-go/v84"
)

const eventDedupeTTL = 24 * time.Hour

// StripeWebhookService consumes already signature-verified events.
type StripeWebhookService interface {
	HandleEvent(ctx context.Context, event *stripe.Event) error
}

// EventVerifier checks the payload signature against the endpoint secret.
type EventVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// StripeWebhook receives processor events for the checkout lifecycle.
//
// Signature verification fails closed with a 400. Past that gate the handler
// always answers 200 {"received": true}: the processor retries on any other
// status, and a confirm failure here is an operational problem to act on from
// logs, not something a redelivery storm would fix.
func StripeWebhook(svc StripeWebhookService, verifier EventVerifier, guard redis.IdempotencyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil || verifier == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "webhook handler unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "read request body"))
			return
		}

		sigHeader := r.Header.Get("Stripe-Signature")
		if sigHeader == "" {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeValidation, "stripe signature missing"))
			return
		}

		event, err := verifier.VerifyEvent(payload, sigHeader)
		if err != nil {
			responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "verify signature"))
			return
		}

		ctx = withEventLogContext(ctx, logg, &event)

		if guard != nil && event.ID != "" {
			key := guard.IdempotencyKey("stripe_event", event.ID)
			claimed, err := guard.SetNX(ctx, key, "1", eventDedupeTTL)
			if err != nil {
				// Redis being down must not make us drop a verified event;
				// the confirm path is idempotent anyway.
				if logg != nil {
					logg.Warn(ctx, "webhook dedupe unavailable, processing anyway")
				}
			} else if !claimed {
				if logg != nil {
					logg.Info(ctx, "duplicate stripe event skipped")
				}
				writeReceived(w)
				return
			}
		}

		if err := svc.HandleEvent(ctx, &event); err != nil {
			if logg != nil {
				logg.Error(ctx, "stripe event processing failed", err)
			}
			writeReceived(w)
			return
		}

		if logg != nil {
			logg.Info(ctx, "stripe event processed")
		}
		writeReceived(w)
	}
}

func withEventLogContext(ctx context.Context, logg *logger.Logger, event *stripe.Event) context.Context {
	if logg == nil {
		return ctx
	}
	return logg.WithFields(ctx, map[string]any{
		"stripe_event_id":   event.ID,
		"stripe_event_type": string(event.Type),
	})
}

func writeReceived(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
