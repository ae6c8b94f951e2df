package handlers

import (
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office API.
type AdminHandler struct {
	admin    *services.AdminService
	products *services.ProductService
	orders   *services.OrderService
	validate *validator.Validate
}

func NewAdminHandler(admin *services.AdminService, products *services.ProductService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		products: products,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the back-office routes. router must be behind AuthRequired and
// AdminRequired.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)

	router.Get("/products", h.HandleGetProducts)
	router.Post("/products", h.HandleCreateProduct)
	router.Put("/products/:id", h.HandleUpdateProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)

	router.Get("/users", h.HandleGetUsers)
	router.Put("/users", h.HandleUpdateUserRole)

	router.Get("/orders", h.HandleGetOrders)
}

// UpdateRoleRequest represents the request body for a role change.
type UpdateRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=admin client super-user CEO"`
}

func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.admin.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, statusFor(err), "Could not compute dashboard", err)
	}
	return c.JSON(dashboard)
}

func (h *AdminHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts(c.UserContext(), "")
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := bindJSON(c, h.validate, &product); !ok {
		return err
	}
	if err := h.products.CreateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, statusFor(err), "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := bindJSON(c, h.validate, &product); !ok {
		return err
	}
	product.ID = c.Params("id")
	if err := h.products.UpdateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, statusFor(err), "Could not update product", err)
	}

	updated, err := h.products.GetProductByID(c.UserContext(), product.ID)
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve product", err)
	}
	return c.JSON(updated)
}

func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.products.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, statusFor(err), "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product " + id + " deleted successfully",
	})
}

func (h *AdminHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.admin.GetUsers(c.UserContext())
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve users", err)
	}
	return c.JSON(users)
}

func (h *AdminHandler) HandleUpdateUserRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	if err := h.admin.UpdateUserRole(c.UserContext(), req.UserID, req.Role); err != nil {
		return respondError(c, statusFor(err), "Could not update user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated",
	})
}

func (h *AdminHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, statusFor(err), "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}
