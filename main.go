package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/metrics"
	"teslo/internal/repositories"
	"teslo/internal/services"
	"teslo/pkg/paypal"
	"teslo/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database pool, opened once for the whole process ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database pool: %v", err)
		}
	}()

	if cfg.Database.SeedProducts {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := database.SeedProducts(ctx, db); err != nil {
			log.Printf("Warning: %v", err)
		}
		cancel()
	}

	// --- Cart storage ---
	var carts repositories.CartRepository
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		carts = repositories.NewRedisCartRepository(rdb, cfg.Redis.CartTTL)
		log.Printf("Carts stored in Redis at %s", cfg.Redis.Addr)
	} else {
		carts = repositories.NewMockCartRepository()
		log.Println("REDIS_ADDR is empty, carts are kept in memory.")
	}

	// --- Order events ---
	var events services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		log.Println("Starting RabbitMQ consumer for orders...")
		if err := mqClient.ConsumeOrderEvents(handleOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is empty, order events are disabled.")
	}

	payments := paypal.NewClient(paypal.Config{
		ClientID:  cfg.PayPal.ClientID,
		Secret:    cfg.PayPal.Secret,
		OAuthURL:  cfg.PayPal.OAuthURL,
		OrdersURL: cfg.PayPal.OrdersURL,
		Timeout:   cfg.PayPal.Timeout,
	})

	app, err := NewApp(Dependencies{
		Config:   cfg,
		DB:       db,
		Carts:    carts,
		Payments: payments,
		Events:   events,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// deferred closes release RabbitMQ, Redis and the database pool
	log.Println("Server gracefully stopped")
}

// handleOrderEvent is the consumer side of the order queue.
func handleOrderEvent(event rabbitmq.OrderEvent) error {
	log.Printf("Received %s event for order %s (user %s, total %s)", event.Type, event.OrderID, event.UserID, event.Total)
	metrics.OrderEventsConsumed.WithLabelValues(string(event.Type)).Inc()
	return nil
}
