package main

import (
	"fmt"
	"log"
	"os"

	"mantatrack/controllers"
	"mantatrack/routes"
	"mantatrack/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	// The stores are constructed once here and handed to whatever needs
	// them; nothing else owns or resets them.
	catalog := store.NewCatalog()
	directory := store.NewDirectory()
	store.Seed(catalog, directory)

	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		sessionFile = "mantatrack_session.json"
	}
	sessions := store.NewSessionStore(sessionFile)
	if user, ok := sessions.Load(); ok {
		log.Printf("✅ Restored session for %s", user.Email)
	}

	app := fiber.New()

	allowOrigins := os.Getenv("ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:8000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(logger.New())

	routes.RegisterPriceRoutes(app, controllers.NewPriceController(catalog))
	routes.RegisterCatalogRoutes(app, controllers.NewCatalogController(catalog))
	routes.RegisterAuthRoutes(app, controllers.NewAuthController(directory, sessions))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "🚀 MantaTrack backend is running!"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	fmt.Println("🚀 Server running on port " + port)
	log.Fatal(app.Listen(":" + port))
}
