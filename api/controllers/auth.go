package controllers

import (
	"net/http"

	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/api/validators"
	"github.com/feastlane/feastlane-backend/internal/auth"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
)

// Signup registers a new account and returns a bearer token.
func Signup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Signup(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// Login verifies credentials and returns a bearer token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, apperrors.New(apperrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Login(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
