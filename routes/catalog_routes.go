package routes

import (
	"mantatrack/controllers"

	"github.com/gofiber/fiber/v2"
)

func RegisterCatalogRoutes(app *fiber.App, cc *controllers.CatalogController) {
	api := app.Group("/api")

	api.Get("/vegetables", cc.GetVegetables)
	api.Get("/markets", cc.GetMarkets)

	api.Get("/filters", cc.GetFilters)
	api.Patch("/filters", cc.SetFilters)
	api.Delete("/filters", cc.ClearFilters)

	api.Get("/selection", cc.GetSelection)
	api.Post("/selection/:id", cc.SelectEntry)
	api.Delete("/selection", cc.ClearSelection)
}
