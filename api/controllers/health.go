package controllers

import (
	"context"
	"net/http"

	"github.com/feastlane/feastlane-backend/api/responses"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
)

// Pinger is any dependency the readiness probe should verify.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as soon as the process serves traffic.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady verifies the backing stores before reporting ready.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w,
					apperrors.Wrap(apperrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]string{"dependency": name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
