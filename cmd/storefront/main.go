package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/api/handlers"
	"storefront/internal/api/middleware"
	"storefront/internal/cartstore"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/fixture"
	"storefront/internal/health"
	"storefront/internal/kv"
	"storefront/internal/metrics"
	"storefront/internal/orders"
	"storefront/internal/resolver"
	service "storefront/internal/services"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Cart persistence setup
	redisClient, err := kv.NewRedisClient(cfg)
	if err != nil {
		slog.Error("error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	store := kv.NewRedisStore(redisClient)

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	cart := cartstore.New(store, cfg.Cart.Key, cfg.Cart.TTL)
	cart.Load(context.Background())

	// Boundary clients
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL)
	orderClient := orders.NewClient(cfg.Orders.BaseURL)

	// Core pipeline
	productResolver := resolver.New(catalogClient)
	cartService := service.NewCartService(cart, productResolver)
	submitter := checkout.NewSubmitter(orderClient, cart)
	checkoutService := service.NewCheckoutService(cartService, submitter)
	orderService := service.NewOrderService(orderClient)

	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// In-memory collaborator surfaces (catalog, categories, order book)
	fixtureHandler := fixture.NewHandler(cfg.Orders.TaxRate)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.Int("cart_units", cart.Snapshot().Units()))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", fixtureHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", fixtureHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", fixtureHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", fixtureHandler.GetCategory())
	routerMux.HandleFunc("POST /api/v1/checkout", fixtureHandler.Checkout())
	routerMux.HandleFunc("GET /api/v1/orders", fixtureHandler.ListOrders())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/checkout", checkoutHandler.Submit())
	routerMux.HandleFunc("GET /api/v1/order-history", orderHandler.ListOrders())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("shutdown signal received, stopping the server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("server shut down gracefully")
	}
}
