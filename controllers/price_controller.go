package controllers

import (
	"errors"
	"log"
	"time"

	"mantatrack/models"
	"mantatrack/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PriceController serves the price board and the buyer dashboard on top of
// the in-memory catalog.
type PriceController struct {
	catalog *store.Catalog
}

func NewPriceController(catalog *store.Catalog) *PriceController {
	return &PriceController{catalog: catalog}
}

// priceEntryView is a price entry plus its freshness badge.
type priceEntryView struct {
	models.PriceEntry
	Status string `json:"status"`
}

func viewsOf(entries []models.PriceEntry, now time.Time) []priceEntryView {
	views := make([]priceEntryView, 0, len(entries))
	for _, e := range entries {
		status := "Fresh"
		if store.IsStale(e, now) {
			status = "Stale"
		}
		views = append(views, priceEntryView{PriceEntry: e, Status: status})
	}
	return views
}

// GetPrices returns the filtered, sorted price board. Query params are
// shallow-merged over the stored filter selection for this request only.
func (pc *PriceController) GetPrices(c *fiber.Ctx) error {
	filters := pc.catalog.Filters()

	if v := c.Query("vegetable"); v != "" {
		filters.Vegetable = v
	}
	if m := c.Query("market"); m != "" {
		filters.Market = m
	}
	if from := c.Query("date_from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date_from"})
		}
		filters.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date_to"})
		}
		// A bare date means the whole day, inclusive.
		if len(to) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Second)
		}
		filters.DateTo = &t
	}
	if sortBy := c.Query("sort_by"); sortBy != "" {
		filters.SortBy = sortBy
	}
	if sortOrder := c.Query("sort_order"); sortOrder != "" {
		filters.SortOrder = sortOrder
	}

	search := c.Query("search")
	if search == "" {
		search = filters.Search
	}

	entries := pc.catalog.Entries()
	result := store.Query(entries, filters, search)

	return c.JSON(viewsOf(result, time.Now()))
}

// GetPriceByID returns a single price entry.
func (pc *PriceController) GetPriceByID(c *fiber.Ctx) error {
	entry, err := pc.catalog.Entry(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}
	views := viewsOf([]models.PriceEntry{entry}, time.Now())
	return c.JSON(views[0])
}

type CreatePriceRequest struct {
	VegetableID       string  `json:"vegetable_id" validate:"required"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	Unit              string  `json:"unit" validate:"required,oneof=kg pc bundle"`
	AvailableQuantity float64 `json:"available_quantity" validate:"gte=0"`
	Notes             string  `json:"notes"`
}

// CreatePrice adds a new quote for the authenticated buyer. Identity fields
// are stamped from the JWT claims, not the request body.
func (pc *PriceController) CreatePrice(c *fiber.Ctx) error {
	var req CreatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input", "detail": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "detail": err.Error()})
	}

	entry, err := pc.catalog.AddEntry(store.NewEntryInput{
		VegetableID:       req.VegetableID,
		Price:             req.Price,
		Unit:              req.Unit,
		BuyerID:           c.Locals("buyer_id").(string),
		BuyerName:         c.Locals("buyer_name").(string),
		Market:            c.Locals("market").(string),
		Location:          c.Locals("location").(string),
		AvailableQuantity: req.AvailableQuantity,
		Notes:             req.Notes,
	})
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Vegetable not found"})
	}

	log.Printf("✅ New price entry added: %s %s at %.2f/%s", entry.BuyerName, entry.VegetableName, entry.Price, entry.Unit)

	return c.Status(201).JSON(entry)
}

type UpdatePriceRequest struct {
	VegetableID       *string  `json:"vegetable_id"`
	Price             *float64 `json:"price" validate:"omitempty,gt=0"`
	Unit              *string  `json:"unit" validate:"omitempty,oneof=kg pc bundle"`
	Market            *string  `json:"market"`
	Location          *string  `json:"location"`
	AvailableQuantity *float64 `json:"available_quantity" validate:"omitempty,gte=0"`
	Notes             *string  `json:"notes"`
}

// UpdatePrice edits one of the caller's own entries. Nil fields are left as
// they are; a changed price lands in the history.
func (pc *PriceController) UpdatePrice(c *fiber.Ctx) error {
	id := c.Params("id")

	entry, err := pc.catalog.Entry(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}
	if entry.BuyerID != c.Locals("buyer_id").(string) {
		return c.Status(403).JSON(fiber.Map{"error": "You can only edit your own price entries"})
	}

	var req UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "detail": err.Error()})
	}

	updated, err := pc.catalog.UpdateEntry(id, models.PriceEntryUpdate{
		VegetableID:       req.VegetableID,
		Price:             req.Price,
		Unit:              req.Unit,
		Market:            req.Market,
		Location:          req.Location,
		AvailableQuantity: req.AvailableQuantity,
		Notes:             req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrVegetableNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "Vegetable not found"})
		}
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}

	return c.JSON(updated)
}

// DeletePrice removes one of the caller's own entries.
func (pc *PriceController) DeletePrice(c *fiber.Ctx) error {
	id := c.Params("id")

	entry, err := pc.catalog.Entry(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}
	if entry.BuyerID != c.Locals("buyer_id").(string) {
		return c.Status(403).JSON(fiber.Map{"error": "You can only delete your own price entries"})
	}

	if err := pc.catalog.DeleteEntry(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}
	return c.JSON(fiber.Map{"message": "Price entry deleted successfully"})
}

type BulkUpdateRequest struct {
	Changes []BulkChange `json:"changes" validate:"required,min=1,dive"`
}

type BulkChange struct {
	ID       string  `json:"id" validate:"required"`
	NewPrice float64 `json:"new_price" validate:"required,gt=0"`
}

// BulkUpdatePrices applies a batch of price changes to the caller's own
// entries. The bulk update form sends changed rows only; rows for entries the
// caller does not own are dropped.
func (pc *PriceController) BulkUpdatePrices(c *fiber.Ctx) error {
	var req BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "detail": err.Error()})
	}

	owned := make(map[string]bool)
	for _, e := range pc.catalog.EntriesByBuyer(c.Locals("buyer_id").(string)) {
		owned[e.ID] = true
	}

	var changes []store.PriceChange
	for _, ch := range req.Changes {
		if owned[ch.ID] {
			changes = append(changes, store.PriceChange{ID: ch.ID, NewPrice: ch.NewPrice})
		}
	}

	updated := pc.catalog.BulkUpdatePrices(changes)

	log.Printf("✅ Bulk update touched %d price entries", updated)

	return c.JSON(fiber.Map{"message": "Prices updated", "updated": updated})
}

// GetPriceHistory returns the price-change records for one entry, oldest
// first.
func (pc *PriceController) GetPriceHistory(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := pc.catalog.Entry(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price entry not found"})
	}

	history := pc.catalog.History(id)
	if history == nil {
		history = []models.PriceHistory{}
	}
	return c.JSON(history)
}

// GetDashboardData returns the caller's entries and their summary stats.
func (pc *PriceController) GetDashboardData(c *fiber.Ctx) error {
	entries := pc.catalog.EntriesByBuyer(c.Locals("buyer_id").(string))
	now := time.Now()

	return c.JSON(fiber.Map{
		"stats":   store.Stats(entries, now),
		"entries": viewsOf(entries, now),
	})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
