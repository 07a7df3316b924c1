package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feastlane/feastlane-backend/api/controllers"
	webhookcontrollers "github.com/feastlane/feastlane-backend/api/controllers/webhooks"
	"github.com/feastlane/feastlane-backend/api/middleware"
	"github.com/feastlane/feastlane-backend/internal/address"
	authsvc "github.com/feastlane/feastlane-backend/internal/auth"
	"github.com/feastlane/feastlane-backend/internal/cart"
	checkoutsvc "github.com/feastlane/feastlane-backend/internal/checkout"
	"github.com/feastlane/feastlane-backend/internal/orders"
	"github.com/feastlane/feastlane-backend/internal/products"
	"github.com/feastlane/feastlane-backend/internal/users"
	stripewebhook "github.com/feastlane/feastlane-backend/internal/webhooks/stripe"
	"github.com/feastlane/feastlane-backend/internal/wishlist"
	"github.com/feastlane/feastlane-backend/pkg/config"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/feastlane/feastlane-backend/pkg/metrics"
	"github.com/feastlane/feastlane-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisClient *redis.Client

	AuthService     authsvc.Service
	UsersService    users.Service
	CartService     cart.Service
	AddressService  address.Service
	ProductsService products.Service
	WishlistService wishlist.Service
	OrdersService   orders.Service
	CheckoutService checkoutsvc.Service

	StripeVerifier webhookcontrollers.EventVerifier
	WebhookService *stripewebhook.Service

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.HTTPMetrics),
		middleware.CORS(cfg.App.FrontendURL),
	)

	r.Route("/health", func(r chi.Router) {
		deps := map[string]controllers.Pinger{
			"database": p.DBPinger,
		}
		if p.RedisClient != nil {
			deps["redis"] = p.RedisClient
		}
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, deps))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	// Signature-verified, no bearer token.
	var guard redis.IdempotencyStore
	if p.RedisClient != nil {
		guard = p.RedisClient
	}
	r.Post("/webhook", webhookcontrollers.StripeWebhook(p.WebhookService, p.StripeVerifier, guard, logg))

	var limiter middleware.RateLimitStore
	if p.RedisClient != nil {
		limiter = p.RedisClient
	}
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.AuthRateLimit(cfg.RateLimit, limiter, logg))
		r.Post("/signup", controllers.Signup(p.AuthService, logg))
		r.Post("/login", controllers.Login(p.AuthService, logg))
	})

	// Public catalog.
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", controllers.MenuList(p.ProductsService, logg))
		r.Get("/filter", controllers.MenuFilter(p.ProductsService, logg))
		r.Get("/cuisine/{cuisine}", controllers.MenuByCuisine(p.ProductsService, logg))
		r.Get("/{productId}", controllers.MenuItem(p.ProductsService, logg))
	})
	r.Get("/search", controllers.Search(p.ProductsService, logg))

	// Everything below requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile", controllers.GetProfile(p.UsersService, logg))
			r.Patch("/profile", controllers.UpdateProfile(p.UsersService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.CartService, logg))
			r.Post("/", controllers.SetCartItem(p.CartService, logg))
			r.Delete("/{cartId}", controllers.RemoveCartItem(p.CartService, logg))
		})

		r.Route("/address", func(r chi.Router) {
			r.Get("/", controllers.ListAddresses(p.AddressService, logg))
			r.Post("/", controllers.AddAddress(p.AddressService, logg))
			r.Delete("/{addressId}", controllers.RemoveAddress(p.AddressService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(p.WishlistService, logg))
			r.Post("/", controllers.WishlistAddItem(p.WishlistService, logg))
			r.Delete("/{productId}", controllers.WishlistRemoveItem(p.WishlistService, logg))
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(p.OrdersService, logg))
			r.Post("/create-order", controllers.CreateOrder(p.OrdersService, logg))
			r.Post("/confirm-payment", controllers.ConfirmPayment(p.OrdersService, logg))
			r.Post("/create-payment-intent", controllers.CreatePaymentIntent(p.CheckoutService, logg))
			r.Get("/{orderId}", controllers.GetOrder(p.OrdersService, logg))
		})

		r.Route("/payment", func(r chi.Router) {
			r.Get("/{addressId}", controllers.CheckoutSession(p.CheckoutService, logg))
			r.Post("/cod-order/{addressId}", controllers.CODOrder(p.CheckoutService, logg))
		})
	})

	return r
}
