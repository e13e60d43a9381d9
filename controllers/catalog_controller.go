package controllers

import (
	"time"

	"mantatrack/models"
	"mantatrack/store"

	"github.com/gofiber/fiber/v2"
)

// CatalogController serves the reference data and the shared browsing state
// (filter selection, selected row) of the price board.
type CatalogController struct {
	catalog *store.Catalog
}

func NewCatalogController(catalog *store.Catalog) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetVegetables returns the static vegetable reference list.
func (cc *CatalogController) GetVegetables(c *fiber.Ctx) error {
	return c.JSON(cc.catalog.Vegetables())
}

// GetMarkets returns the unique market names across all price entries,
// sorted, for the market filter dropdown.
func (cc *CatalogController) GetMarkets(c *fiber.Ctx) error {
	markets := store.Markets(cc.catalog.Entries())
	if markets == nil {
		markets = []string{}
	}
	return c.JSON(markets)
}

// GetFilters returns the current filter selection.
func (cc *CatalogController) GetFilters(c *fiber.Ctx) error {
	return c.JSON(cc.catalog.Filters())
}

// SetFilters shallow-merges the submitted fields into the filter selection.
func (cc *CatalogController) SetFilters(c *fiber.Ctx) error {
	var patch models.FilterPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	return c.JSON(cc.catalog.SetFilters(patch))
}

// ClearFilters resets the filter selection.
func (cc *CatalogController) ClearFilters(c *fiber.Ctx) error {
	cc.catalog.ClearFilters()
	return c.JSON(fiber.Map{"message": "Filters cleared"})
}

// SelectEntry marks a price entry as the current selection, the row the
// history or edit view acts on.
func (cc *CatalogController) SelectEntry(c *fiber.Ctx) error {
	if err := cc.catalog.Select(c.Params("id")); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}
	return c.JSON(fiber.Map{"message": "Entry selected"})
}

// GetSelection returns the currently selected entry, if any.
func (cc *CatalogController) GetSelection(c *fiber.Ctx) error {
	entry, ok := cc.catalog.Selected()
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No entry selected"})
	}
	views := viewsOf([]models.PriceEntry{entry}, time.Now())
	return c.JSON(views[0])
}

// ClearSelection drops the current selection.
func (cc *CatalogController) ClearSelection(c *fiber.Ctx) error {
	cc.catalog.ClearSelection()
	return c.JSON(fiber.Map{"message": "Selection cleared"})
}
