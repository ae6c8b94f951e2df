package handlers

import (
	"errors"

	"teslo/internal/middleware"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. router must be behind AuthRequired.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Post("/pay", h.HandlePayOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleGetOrders returns the order history of the caller.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForUser(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleCreateOrder places an order from the checkout payload.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.service.CreateOrder(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, services.ErrProductNotFound) {
			// the cart references a product that is gone: the request itself is wrong
			status = fiber.StatusBadRequest
		}
		return respondError(c, status, "Order rejected", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandlePayOrder confirms a PayPal transaction for an order.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	var req services.PayOrderRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.service.ConfirmPayment(c.UserContext(), req.TransactionID, req.OrderID)
	if err != nil {
		return respondError(c, statusFor(err), "Payment not confirmed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Order paid",
		"order":   order,
	})
}
