package routes

import (
	"mantatrack/controllers"
	"mantatrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterPriceRoutes(app *fiber.App, pc *controllers.PriceController) {
	api := app.Group("/api")

	api.Get("/prices", pc.GetPrices)
	api.Get("/prices/:id", pc.GetPriceByID)
	api.Get("/prices/:id/history", pc.GetPriceHistory)

	// Buyer-only mutations
	protected := api.Group("/", middleware.JWTMiddleware)
	protected.Post("/prices", pc.CreatePrice)
	protected.Put("/prices/:id", pc.UpdatePrice)
	protected.Delete("/prices/:id", pc.DeletePrice)
	protected.Post("/prices/bulk-update", pc.BulkUpdatePrices)

	protected.Get("/dashboard-data", pc.GetDashboardData)
}
