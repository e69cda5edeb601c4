package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sevasanjeevani/store/internal/cart"
	"github.com/sevasanjeevani/store/internal/checkout"
	"github.com/sevasanjeevani/store/internal/events"
	h "github.com/sevasanjeevani/store/internal/http"
	"github.com/sevasanjeevani/store/internal/inventory"
	"github.com/sevasanjeevani/store/internal/orders"
	"github.com/sevasanjeevani/store/internal/pricing"
	"github.com/sevasanjeevani/store/internal/stock"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Postgres orders.Credentials

	FreeShippingOver decimal.Decimal
	FlatShippingFee  decimal.Decimal
	RejectEmptyCart  bool
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Postgres: orders.Credentials{
			Host:              getEnv("PG_HOST", "localhost"),
			Port:              getEnvInt("PG_PORT", 5432),
			User:              getEnv("PG_USER", "postgres"),
			Password:          getEnv("PG_PASSWORD", "postgres"),
			DBName:            getEnv("PG_DBNAME", "storefront"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		FreeShippingOver: getEnvDecimal("FREE_SHIPPING_OVER", "999"),
		FlatShippingFee:  getEnvDecimal("FLAT_SHIPPING_FEE", "59"),
		RejectEmptyCart:  getEnv("REJECT_EMPTY_CART", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid decimal for %s: %v", key, err)
	}
	return d
}

func main() {
	cfg := loadConfig()

	pricingCfg := pricing.Config{
		FreeShippingOver: cfg.FreeShippingOver,
		FlatShippingFee:  cfg.FlatShippingFee,
	}

	// Cart sessions live in redis
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	cartService := cart.NewService(cart.NewRedisStore(redisClient), pricingCfg)

	// Orders live in postgres
	orderRepo, err := orders.NewRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer orderRepo.Close()

	if err := orderRepo.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Activity log
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	// Stock: in-process store behind a circuit breaker, matching the
	// shape of an external catalog client
	stockStore := inventory.NewMemoryStore()
	catalog := stock.NewBreakerClient(stockStore)
	reconciler := stock.NewReconciler(catalog)

	orderService := orders.NewService(orderRepo, publisher)
	orchestrator := checkout.NewOrchestrator(
		cartService,
		reconciler,
		stockStore,
		orderRepo,
		publisher,
		pricingCfg,
		checkout.Config{RejectEmptyCart: cfg.RejectEmptyCart},
	)

	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(orchestrator, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderService, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MockAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{product_id}", cartHandler.UpdateQuantity)
		r.Delete("/cart/items/{product_id}", cartHandler.RemoveItem)

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Get("/orders", ordersHandler.ListOrders)
		r.Get("/orders/{order_id}", ordersHandler.GetOrder)
		r.Post("/orders/{order_id}/status", ordersHandler.TransitionOrder)
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		log.Printf("storefront listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
