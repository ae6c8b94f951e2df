package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"teslo/internal/config"
	"teslo/internal/handlers"
	"teslo/internal/middleware"
	"teslo/internal/repositories"
	"teslo/internal/services"
)

// Dependencies are the process-scoped resources the HTTP application is built on.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Carts    repositories.CartRepository
	Payments services.PaymentProvider
	Events   services.EventPublisher // nil disables order events
}

// NewApp wires repositories, services and handlers into a Fiber application.
func NewApp(deps Dependencies) (*fiber.App, error) {
	if deps.Config == nil || deps.DB == nil || deps.Carts == nil || deps.Payments == nil {
		return nil, fmt.Errorf("config, database, cart repository and payment provider are required")
	}
	if deps.Config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, deps.Config.Auth.JWTSecret, deps.Config.Auth.TokenTTL)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(deps.Carts, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, deps.Payments, deps.Events, cartService)
	adminService := services.NewAdminService(orderRepo, productRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(adminService, productService, orderService)

	app := fiber.New(fiber.Config{
		AppName: "teslo",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Events != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// public routes are registered before the authenticated group
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	adminHandler.RegisterRoutes(protected.Group("/admin", middleware.AdminRequired()))

	return app, nil
}
