package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/feastlane/feastlane-backend/api/responses"
	"github.com/feastlane/feastlane-backend/pkg/config"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
)

// RateLimitStore is the counter surface backing the fixed-window limiter.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimit throttles credential endpoints per client IP and per submitted
// email so a single address cannot brute-force many accounts and a single
// account cannot be hammered from many addresses. Emails are hashed before
// they become part of a counter key.
func AuthRateLimit(cfg config.RateLimitConfig, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || !cfg.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if ip := clientIP(r); cfg.AuthIPLimit > 0 && ip != "" {
				allowed, count, err := store.FixedWindowAllow(ctx, "auth:ip:"+ip, int64(cfg.AuthIPLimit), cfg.AuthWindow)
				if err != nil {
					responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "rate limiter unavailable"))
					return
				}
				if !allowed {
					blockRateLimited(ctx, logg, w, map[string]any{
						"scope":    "ip",
						"ip":       ip,
						"attempts": count,
						"limit":    cfg.AuthIPLimit,
					})
					return
				}
			}

			if cfg.AuthEmailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "reading request body"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := emailFromBody(body); email != "" {
					sum := sha256.Sum256([]byte(email))
					hash := hex.EncodeToString(sum[:])
					allowed, count, err := store.FixedWindowAllow(ctx, "auth:email:"+hash, int64(cfg.AuthEmailLimit), cfg.AuthWindow)
					if err != nil {
						responses.WriteError(ctx, logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "rate limiter unavailable"))
						return
					}
					if !allowed {
						blockRateLimited(ctx, logg, w, map[string]any{
							"scope":      "email",
							"email_hash": hash,
							"attempts":   count,
							"limit":      cfg.AuthEmailLimit,
						})
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func blockRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, fields map[string]any) {
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, apperrors.New(apperrors.CodeRateLimited, "too many attempts"))
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func emailFromBody(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}
