package routes

import (
	"mantatrack/controllers"
	"mantatrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterAuthRoutes(app *fiber.App, ac *controllers.AuthController) {
	auth := app.Group("/auth")

	auth.Post("/login", ac.Login)
	auth.Post("/signup", ac.Signup)
	auth.Post("/logout", ac.Logout)
	auth.Get("/session", ac.GetSession)

	profile := auth.Group("/profile", middleware.JWTMiddleware)
	profile.Get("/", ac.GetProfile)
	profile.Put("/", ac.UpdateProfile)
}
