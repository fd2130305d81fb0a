package handler

import (
	"errors"

	"github.com/Tabish5858/inventory-managment-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

// fail maps the service error taxonomy onto HTTP statuses. Everything
// surfaces directly to the caller as {"error": ...}; there is no local
// recovery.
func fail(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrDuplicateSKU):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrProductIDRequired), errors.As(err, &vErr):
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
