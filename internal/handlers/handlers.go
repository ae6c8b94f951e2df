package handlers

import (
	"errors"
	"fmt"
	"log"

	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// bindJSON parses the request body into out and validates it. When it reports false the
// error response has already been written and the returned error must be passed back to Fiber.
func bindJSON(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body on %s: %v", c.Path(), err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(out); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrPaymentNotCompleted),
		errors.Is(err, services.ErrAmountMismatch):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCartLineNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSlugTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrTotalMismatch),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidSize),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrEmptyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrPaymentProviderUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError logs err and writes it with status.
func respondError(c *fiber.Ctx, status int, message string, err error) error {
	log.Printf("%s %s: %s: %v", c.Method(), c.Path(), message, err)

	detail := err.Error()
	if status == fiber.StatusBadGateway {
		detail = services.ErrPaymentProviderUnavailable.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   detail,
	})
}
