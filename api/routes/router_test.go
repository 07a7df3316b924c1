package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/feastlane/feastlane-backend/pkg/auth"
	"github.com/feastlane/feastlane-backend/pkg/config"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:         "dev",
			FrontendURL: "http://localhost:5173",
		},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "feastlane-test",
			ExpirationMinutes: 5,
		},
	}
}

func TestRouterHealthLive(t *testing.T) {
	handler := NewRouter(RouterParams{Config: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	handler := NewRouter(RouterParams{Config: testConfig()})

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/order"},
		{http.MethodPost, "/order/create-order"},
		{http.MethodPost, "/order/confirm-payment"},
		{http.MethodGet, "/payment/" + uuid.NewString()},
		{http.MethodPost, "/payment/cod-order/" + uuid.NewString()},
		{http.MethodGet, "/cart"},
		{http.MethodGet, "/user/profile"},
		{http.MethodGet, "/wishlist"},
		{http.MethodGet, "/address"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRouterValidTokenReachesHandlers(t *testing.T) {
	cfg := testConfig()
	handler := NewRouter(RouterParams{Config: cfg})

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	// Services are unset in this router, so reaching the controller yields a
	// 500 "unavailable" rather than the middleware's 401.
	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusUnauthorized {
		t.Fatalf("valid token must pass the auth middleware")
	}
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	handler := NewRouter(RouterParams{Config: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
