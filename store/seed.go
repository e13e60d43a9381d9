package store

import (
	"log"
	"time"

	"mantatrack/models"

	"github.com/google/uuid"
)

// Seed loads the demo data set: the vegetable reference list, a handful of
// buyer accounts and their current price quotes, and some price history for
// the board. Two of the seeded quotes are old enough to show up as stale.
func Seed(cat *Catalog, dir *Directory) {
	cat.mu.Lock()
	cat.vegetables = []models.Vegetable{
		{ID: "veg-1", Name: "Tomato", Category: "Fruit Vegetable"},
		{ID: "veg-2", Name: "Potato", Category: "Root Crop"},
		{ID: "veg-3", Name: "Onion", Category: "Bulb"},
		{ID: "veg-4", Name: "Carrot", Category: "Root Crop"},
		{ID: "veg-5", Name: "Cabbage", Category: "Leafy"},
		{ID: "veg-6", Name: "Eggplant", Category: "Fruit Vegetable"},
		{ID: "veg-7", Name: "Squash", Category: "Fruit Vegetable"},
	}
	cat.mu.Unlock()

	demo := seedUser(dir, "Demo Buyer", "demo@example.com", "demo123", "Manila Market", "Manila")
	metro := seedUser(dir, "Metro Grocery Chain", "buyer@metrogrocery.ph", "metro123", "Quezon City Market", "Quezon City")
	seafood := seedUser(dir, "Seafood City", "purchasing@seafoodcity.ph", "seafood123", "Makati Market", "Makati")
	robinsons := seedUser(dir, "Robinson's Supermarket", "produce@robinsons.ph", "robinsons123", "Manila Market", "Manila")
	sm := seedUser(dir, "SM Hypermarket", "buying@smhypermarket.ph", "sm123", "Quezon City Market", "Quezon City")

	now := cat.now()
	fresh := now.Add(-2 * time.Hour)
	stale := now.Add(-3 * 24 * time.Hour)

	seedEntry(cat, demo, "veg-1", 45.00, models.UnitKg, 100, fresh)
	seedEntry(cat, metro, "veg-2", 35.00, models.UnitKg, 250, stale)
	seedEntry(cat, seafood, "veg-3", 60.00, models.UnitKg, 80, fresh)
	seedEntry(cat, robinsons, "veg-4", 40.00, models.UnitKg, 120, fresh)
	seedEntry(cat, sm, "veg-5", 25.00, models.UnitPc, 300, stale)

	log.Printf("✅ Seeded %d vegetables, %d price entries, %d users",
		len(cat.Vegetables()), len(cat.Entries()), 5)
}

func seedUser(dir *Directory, name, email, password, market, location string) models.User {
	user, err := dir.Signup(SignupInput{
		Name:           name,
		Email:          email,
		Password:       password,
		Market:         market,
		Location:       location,
		ContactVisible: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to seed user %s: %v", email, err)
	}
	return user
}

func seedEntry(cat *Catalog, buyer models.User, vegetableID string, price float64, unit string, qty float64, updatedAt time.Time) {
	entry, err := cat.AddEntry(NewEntryInput{
		VegetableID:       vegetableID,
		Price:             price,
		Unit:              unit,
		BuyerID:           buyer.ID,
		BuyerName:         buyer.Name,
		Market:            buyer.Market,
		Location:          buyer.Location,
		AvailableQuantity: qty,
	})
	if err != nil {
		log.Fatalf("❌ Failed to seed price entry: %v", err)
	}

	// Backdate the timestamps and give each quote one prior price change so
	// the history view has something to show.
	cat.mu.Lock()
	for i := range cat.priceEntries {
		if cat.priceEntries[i].ID == entry.ID {
			cat.priceEntries[i].CreatedAt = updatedAt.Add(-7 * 24 * time.Hour)
			cat.priceEntries[i].UpdatedAt = updatedAt
		}
	}
	cat.priceHistory = append(cat.priceHistory, models.PriceHistory{
		ID:           uuid.NewString(),
		PriceEntryID: entry.ID,
		OldPrice:     price * 0.9,
		NewPrice:     price,
		UpdatedAt:    updatedAt,
	})
	cat.mu.Unlock()
}
