// handlers/user_routes.go
package handlers

import (
	"strconv"

	"catfacts-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	users := app.Group("/api/users")

	users.Get("/", func(c *fiber.Ctx) error {
		list, err := userService.List()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(list)
	})

	users.Get("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		user, err := userService.Get(uint(id))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(user)
	})

	users.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		user, err := userService.Create(req.Username)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	users.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		if err := userService.Delete(uint(id)); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
	})
}
