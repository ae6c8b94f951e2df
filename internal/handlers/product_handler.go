package handlers

import (
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalogue.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalogue routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:slug", h.HandleGetProductBySlug)
	router.Get("/search/:query", h.HandleSearch)
}

// HandleGetProducts lists the catalogue, optionally filtered with ?gender=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), c.Query("gender"))
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductBySlug retrieves a single product.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleSearch matches products by title or tag.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.UserContext(), c.Params("query"))
	if err != nil {
		return respondError(c, statusFor(err), "Could not search products", err)
	}
	return c.JSON(products)
}
