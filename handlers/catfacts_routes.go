// handlers/catfacts_routes.go
package handlers

import (
	"strconv"

	"catfacts-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCatFactsRoutes(app *fiber.App, factsService *services.CatFactsService) {
	facts := app.Group("/api/catfacts")

	// Facts for a memory game: one per pair, duplicated client-side.
	facts.Get("/game", func(c *fiber.Ctx) error {
		pairs, err := strconv.Atoi(c.Query("pairs"))
		if err != nil {
			pairs = 6
		}
		if pairs < 3 || pairs > 20 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Pairs must be between 3 and 20",
			})
		}

		list, err := factsService.FactsForGame(c.Context(), pairs)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"facts": list})
	})

	facts.Get("/random", func(c *fiber.Ctx) error {
		fact, err := factsService.RandomFact(c.Context())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fact)
	})
}
