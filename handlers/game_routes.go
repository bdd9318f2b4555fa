// handlers/game_routes.go
package handlers

import (
	"strconv"

	"catfacts-api/models"
	"catfacts-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, statsService *services.StatsService) {
	games := app.Group("/api/games")

	// Start a new session: playing status, zeroed counters, fresh token.
	games.Post("/start", func(c *fiber.Ctx) error {
		var req struct {
			UserID     uint              `json:"userId"`
			Difficulty models.Difficulty `json:"difficulty"`
			TotalPairs int               `json:"totalPairs"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		game, err := gameService.Start(req.UserID, req.Difficulty, req.TotalPairs)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(game)
	})

	// Partial update: only fields present in the body are applied.
	games.Put("/:gameId", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("gameId"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
		}

		var req struct {
			Score          *int               `json:"score"`
			Moves          *int               `json:"moves"`
			TimeElapsed    *int               `json:"timeElapsed"`
			MatchedPairs   *int               `json:"matchedPairs"`
			FactsCollected *models.FactList   `json:"factsCollected"`
			Status         *models.GameStatus `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		game, err := gameService.Update(uint(id), services.GamePatch{
			Score:          req.Score,
			Moves:          req.Moves,
			TimeElapsed:    req.TimeElapsed,
			MatchedPairs:   req.MatchedPairs,
			FactsCollected: req.FactsCollected,
			Status:         req.Status,
		})
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(game)
	})

	// Legacy one-shot submission kept for clients predating the
	// start/update flow.
	games.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			UserID         uint              `json:"userId"`
			Score          *int              `json:"score"`
			TotalQuestions int               `json:"totalQuestions"`
			Difficulty     models.Difficulty `json:"difficulty"`
			TimeElapsed    int               `json:"timeElapsed"`
			Moves          int               `json:"moves"`
			FactsCollected models.FactList   `json:"factsCollected"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.UserID == 0 || req.Score == nil || req.TotalQuestions == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "userId, score, and totalQuestions are required",
			})
		}

		game, err := gameService.Submit(services.SubmitParams{
			UserID:         req.UserID,
			Score:          *req.Score,
			TotalQuestions: req.TotalQuestions,
			Difficulty:     req.Difficulty,
			TimeElapsed:    req.TimeElapsed,
			Moves:          req.Moves,
			FactsCollected: req.FactsCollected,
		})
		if err != nil {
			return errorResponse(c, err)
		}
		// Old clients still read total_questions off the response.
		return c.Status(fiber.StatusCreated).JSON(struct {
			*models.Game
			TotalQuestions int `json:"total_questions"`
		}{game, game.TotalPairs})
	})

	games.Get("/user/:userId", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		list, err := gameService.GamesForUser(uint(userID))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(list)
	})

	games.Get("/user/:userId/stats", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		stats, err := statsService.UserStats(uint(userID))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(stats)
	})

	games.Get("/top", func(c *fiber.Ctx) error {
		difficulty := models.Difficulty(c.Query("difficulty", string(models.DifficultyEasy)))
		top, err := statsService.TopGames(difficulty)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(top)
	})

	games.Get("/players/top", func(c *fiber.Ctx) error {
		players, err := statsService.TopPlayers()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(players)
	})

	games.Get("/leaderboard", func(c *fiber.Ctx) error {
		board, err := statsService.LegacyLeaderboard()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(board)
	})

	games.Get("/", func(c *fiber.Ctx) error {
		list, err := gameService.AllGames()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(list)
	})
}
