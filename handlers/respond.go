package handlers

import (
	"errors"
	"os"

	"catfacts-api/services"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps the service error taxonomy onto HTTP statuses.
// Unclassified errors become a 500; the cause is only exposed outside
// production.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
	case errors.Is(err, services.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already exists"})
	default:
		body := fiber.Map{"error": "Internal Server Error"}
		if os.Getenv("APP_ENV") != "production" {
			body["cause"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
