package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // local dev
}

// CORS returns middleware that applies the API's allowed origin policy.
// The configured frontend URL is always allowed.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	origins := append([]string(nil), defaultCORSOrigins...)
	if trimmed := strings.TrimRight(strings.TrimSpace(frontendURL), "/"); trimmed != "" {
		origins = append(origins, trimmed)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
