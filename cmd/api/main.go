package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/feastlane/feastlane-backend/api/routes"
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
	"github.com/feastlane/feastlane-backend/pkg/db"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/feastlane/feastlane-backend/pkg/metrics"
	"github.com/feastlane/feastlane-backend/pkg/migrate"
	"github.com/feastlane/feastlane-backend/pkg/redis"
	pkgstripe "github.com/feastlane/feastlane-backend/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	conn := dbClient.DB()

	usersService, err := users.NewService(users.ServiceParams{Repo: users.NewRepository(conn)})
	if err != nil {
		fatal(logg, "users service", err)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		fatal(logg, "auth service", err)
	}

	productRepo := products.NewRepository(conn)
	productsService, err := products.NewService(productRepo)
	if err != nil {
		fatal(logg, "products service", err)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cart.NewRepository(conn),
		ProductRepo: productRepo,
	})
	if err != nil {
		fatal(logg, "cart service", err)
	}

	addressService, err := address.NewService(address.NewRepository(conn))
	if err != nil {
		fatal(logg, "address service", err)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlist.NewRepository(conn),
		ProductRepo:  productRepo,
	})
	if err != nil {
		fatal(logg, "wishlist service", err)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:               orders.NewRepository(conn),
		Tx:                 dbClient,
		Logger:             logg,
		TrustClientConfirm: cfg.Checkout.TrustClientConfirm,
	})
	if err != nil {
		fatal(logg, "orders service", err)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Orders:      ordersService,
		Stripe:      checkoutsvc.NewStripeClient(stripeClient),
		Checkout:    cfg.Checkout,
		FrontendURL: cfg.App.FrontendURL,
		Metrics:     checkoutMetrics,
		Logger:      logg,
	})
	if err != nil {
		fatal(logg, "checkout service", err)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Orders:  ordersService,
		Logger:  logg,
		Metrics: checkoutMetrics,
	})
	if err != nil {
		fatal(logg, "webhook service", err)
	}

	handler := routes.NewRouter(routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DBPinger:        dbClient,
		RedisClient:     redisClient,
		AuthService:     authService,
		UsersService:    usersService,
		CartService:     cartService,
		AddressService:  addressService,
		ProductsService: productsService,
		WishlistService: wishlistService,
		OrdersService:   ordersService,
		CheckoutService: checkoutService,
		StripeVerifier:  stripeClient,
		WebhookService:  webhookService,
		HTTPMetrics:     httpMetrics,
		Registry:        registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error closing dependencies", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func fatal(logg *logger.Logger, what string, err error) {
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
