package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"catfacts-api/handlers"
	"catfacts-api/middleware"
	"catfacts-api/models"
	"catfacts-api/services"
	"catfacts-api/utils"
	"catfacts-api/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var startedAt = time.Now()

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			body := fiber.Map{"error": "Internal Server Error"}
			if os.Getenv("APP_ENV") != "production" {
				body["cause"] = err.Error()
			}
			return c.Status(code).JSON(body)
		},
	})

	app.Use(middleware.RequestLogger())

	allowedOrigins := utils.Getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	db, err := gorm.Open(mysql.Open(buildDSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to access database pool:", err)
	}
	// Bounded pool: requests queue for a free slot rather than opening more.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	userService := services.NewUserService(db)
	gameService := services.NewGameService(db)
	statsService := services.NewStatsService(db)
	catFactsService := services.NewCatFactsService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.WarmFactPool(ctx, catFactsService, 10*time.Minute)
	gameService.StartSessionReaper()

	handlers.SetupUserRoutes(app, userService)
	handlers.SetupGameRoutes(app, gameService, statsService)
	handlers.SetupCatFactsRoutes(app, catFactsService)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CatFacts API Server",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"users":    "/api/users",
				"games":    "/api/games",
				"catfacts": "/api/catfacts",
				"health":   "/api/health",
			},
		})
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": fmt.Sprintf("Cannot %s %s", c.Method(), c.Path()),
		})
	})

	port := utils.Getenv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("🚀 CatFacts API Server is running")
	log.Printf("📡 Server listening on port %s", port)
	log.Printf("🌍 Environment: %s", utils.Getenv("APP_ENV", "development"))
	log.Printf("💚 Health check: http://localhost:%s/api/health", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func buildDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		utils.Getenv("DB_USERNAME", "root"),
		os.Getenv("DB_PASSWORD"),
		utils.Getenv("DB_HOST", "127.0.0.1"),
		utils.Getenv("DB_PORT", "3306"),
		utils.Getenv("DB_DATABASE", "catfacts"),
	)
}
