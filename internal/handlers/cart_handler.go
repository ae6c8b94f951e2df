package handlers

import (
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes the cart of the authenticated user.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. router must be behind AuthRequired.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items", h.HandleChangeQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Put("/address", h.HandleUpdateAddress)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	state, err := h.service.GetCart(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, statusFor(err), "Could not load cart", err)
	}
	return c.JSON(state)
}

func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req services.CartItemRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	state, err := h.service.AddItem(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, statusFor(err), "Could not add item to cart", err)
	}
	return c.JSON(state)
}

func (h *CartHandler) HandleChangeQuantity(c *fiber.Ctx) error {
	var req services.CartItemRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	state, err := h.service.ChangeQuantity(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, statusFor(err), "Could not change quantity", err)
	}
	return c.JSON(state)
}

// HandleRemoveItem removes /items/:productId?size=M from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	size := c.Query("size")
	if size == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'size' is required",
		})
	}
	state, err := h.service.RemoveItem(c.UserContext(), middleware.UserID(c), c.Params("productId"), size)
	if err != nil {
		return respondError(c, statusFor(err), "Could not remove item", err)
	}
	return c.JSON(state)
}

func (h *CartHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	var address models.ShippingAddress
	if ok, err := bindJSON(c, h.validate, &address); !ok {
		return err
	}
	state, err := h.service.UpdateShippingAddress(c.UserContext(), middleware.UserID(c), address)
	if err != nil {
		return respondError(c, statusFor(err), "Could not update shipping address", err)
	}
	return c.JSON(state)
}
