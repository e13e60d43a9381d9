package store

import (
	"errors"
	"sync"
	"time"

	"mantatrack/models"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound     = errors.New("price entry not found")
	ErrVegetableNotFound = errors.New("vegetable not found")
)

// Catalog owns the vegetable reference list, the live price entries and the
// append-only price history. It replaces the database for the demo: everything
// lives in process memory and is guarded by a single mutex so concurrent
// handlers see one operation at a time.
type Catalog struct {
	mu           sync.Mutex
	vegetables   []models.Vegetable
	priceEntries []models.PriceEntry
	priceHistory []models.PriceHistory
	filters      models.FilterOptions
	selected     *models.PriceEntry

	now func() time.Time
}

// NewCatalog returns an empty catalog. Call Seed to load the demo data.
func NewCatalog() *Catalog {
	return &Catalog{now: time.Now}
}

// NewEntryInput carries the caller-supplied fields of a new price entry.
// Identity fields (buyer id/name, market, location) come from the
// authenticated session, never from the request body.
type NewEntryInput struct {
	VegetableID       string
	Price             float64
	Unit              string
	BuyerID           string
	BuyerName         string
	Market            string
	Location          string
	AvailableQuantity float64
	Notes             string
}

// PriceChange is one row of a bulk price update.
type PriceChange struct {
	ID       string  `json:"id"`
	NewPrice float64 `json:"new_price"`
}

// Vegetables returns a copy of the reference list.
func (cat *Catalog) Vegetables() []models.Vegetable {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	out := make([]models.Vegetable, len(cat.vegetables))
	copy(out, cat.vegetables)
	return out
}

// Entries returns a copy of all live price entries in insertion order.
func (cat *Catalog) Entries() []models.PriceEntry {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	out := make([]models.PriceEntry, len(cat.priceEntries))
	copy(out, cat.priceEntries)
	return out
}

// EntriesByBuyer returns the entries owned by one buyer, in insertion order.
func (cat *Catalog) EntriesByBuyer(buyerID string) []models.PriceEntry {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	var out []models.PriceEntry
	for _, e := range cat.priceEntries {
		if e.BuyerID == buyerID {
			out = append(out, e)
		}
	}
	return out
}

// Entry looks up a single price entry by id.
func (cat *Catalog) Entry(id string) (models.PriceEntry, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	for _, e := range cat.priceEntries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.PriceEntry{}, ErrEntryNotFound
}

// AddEntry creates a new price entry. The vegetable name is resolved from the
// reference list and snapshotted onto the entry; ids are minted with uuid so
// an add after a delete can never reuse one.
func (cat *Catalog) AddEntry(input NewEntryInput) (models.PriceEntry, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	veg, ok := cat.vegetableByID(input.VegetableID)
	if !ok {
		return models.PriceEntry{}, ErrVegetableNotFound
	}

	now := cat.now()
	entry := models.PriceEntry{
		ID:                uuid.NewString(),
		VegetableID:       veg.ID,
		VegetableName:     veg.Name,
		Price:             input.Price,
		Unit:              input.Unit,
		BuyerID:           input.BuyerID,
		BuyerName:         input.BuyerName,
		Market:            input.Market,
		Location:          input.Location,
		AvailableQuantity: input.AvailableQuantity,
		Notes:             input.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	cat.priceEntries = append(cat.priceEntries, entry)
	return entry, nil
}

// UpdateEntry merges the non-nil fields of upd into the entry with the given
// id and stamps UpdatedAt. A price change appends exactly one history record.
func (cat *Catalog) UpdateEntry(id string, upd models.PriceEntryUpdate) (models.PriceEntry, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	for i := range cat.priceEntries {
		entry := &cat.priceEntries[i]
		if entry.ID != id {
			continue
		}

		if upd.VegetableID != nil {
			veg, ok := cat.vegetableByID(*upd.VegetableID)
			if !ok {
				return models.PriceEntry{}, ErrVegetableNotFound
			}
			entry.VegetableID = veg.ID
			entry.VegetableName = veg.Name
		}
		if upd.Price != nil && *upd.Price != entry.Price {
			cat.appendHistory(entry.ID, entry.Price, *upd.Price)
			entry.Price = *upd.Price
		}
		if upd.Unit != nil {
			entry.Unit = *upd.Unit
		}
		if upd.Market != nil {
			entry.Market = *upd.Market
		}
		if upd.Location != nil {
			entry.Location = *upd.Location
		}
		if upd.AvailableQuantity != nil {
			entry.AvailableQuantity = *upd.AvailableQuantity
		}
		if upd.Notes != nil {
			entry.Notes = *upd.Notes
		}
		entry.UpdatedAt = cat.now()
		return *entry, nil
	}
	return models.PriceEntry{}, ErrEntryNotFound
}

// DeleteEntry removes the entry with the given id. History records for the
// entry are kept; history is append-only.
func (cat *Catalog) DeleteEntry(id string) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	for i, e := range cat.priceEntries {
		if e.ID == id {
			cat.priceEntries = append(cat.priceEntries[:i], cat.priceEntries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// BulkUpdatePrices applies every change whose id matches a live entry and
// returns how many entries were touched. Entries not listed keep their price
// and UpdatedAt. A listed entry is stamped even when the new price equals the
// old one; callers are expected to send changed rows only.
func (cat *Catalog) BulkUpdatePrices(changes []PriceChange) int {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	byID := make(map[string]float64, len(changes))
	for _, ch := range changes {
		byID[ch.ID] = ch.NewPrice
	}

	updated := 0
	now := cat.now()
	for i := range cat.priceEntries {
		entry := &cat.priceEntries[i]
		newPrice, ok := byID[entry.ID]
		if !ok {
			continue
		}
		if newPrice != entry.Price {
			cat.appendHistory(entry.ID, entry.Price, newPrice)
			entry.Price = newPrice
		}
		entry.UpdatedAt = now
		updated++
	}
	return updated
}

// History returns the price-change records for one entry, oldest first.
func (cat *Catalog) History(priceEntryID string) []models.PriceHistory {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	var out []models.PriceHistory
	for _, h := range cat.priceHistory {
		if h.PriceEntryID == priceEntryID {
			out = append(out, h)
		}
	}
	return out
}

// SetFilters shallow-merges the patch into the current filter selection.
// Bounds are not validated; a dateFrom after dateTo simply matches nothing.
func (cat *Catalog) SetFilters(patch models.FilterPatch) models.FilterOptions {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if patch.Vegetable != nil {
		cat.filters.Vegetable = *patch.Vegetable
	}
	if patch.Market != nil {
		cat.filters.Market = *patch.Market
	}
	if patch.DateFrom != nil {
		if patch.DateFrom.IsZero() {
			cat.filters.DateFrom = nil
		} else {
			t := *patch.DateFrom
			cat.filters.DateFrom = &t
		}
	}
	if patch.DateTo != nil {
		if patch.DateTo.IsZero() {
			cat.filters.DateTo = nil
		} else {
			t := *patch.DateTo
			cat.filters.DateTo = &t
		}
	}
	if patch.Search != nil {
		cat.filters.Search = *patch.Search
	}
	if patch.SortBy != nil {
		cat.filters.SortBy = *patch.SortBy
	}
	if patch.SortOrder != nil {
		cat.filters.SortOrder = *patch.SortOrder
	}
	return cat.filters
}

// Filters returns the current filter selection.
func (cat *Catalog) Filters() models.FilterOptions {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.filters
}

// ClearFilters resets the filter selection.
func (cat *Catalog) ClearFilters() {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	cat.filters = models.FilterOptions{}
}

// Select marks one entry as the current selection (the row a modal acts on).
func (cat *Catalog) Select(id string) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	for _, e := range cat.priceEntries {
		if e.ID == id {
			sel := e
			cat.selected = &sel
			return nil
		}
	}
	return ErrEntryNotFound
}

// Selected returns the current selection, if any.
func (cat *Catalog) Selected() (models.PriceEntry, bool) {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.selected == nil {
		return models.PriceEntry{}, false
	}
	return *cat.selected, true
}

// ClearSelection drops the current selection.
func (cat *Catalog) ClearSelection() {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	cat.selected = nil
}

func (cat *Catalog) vegetableByID(id string) (models.Vegetable, bool) {
	for _, v := range cat.vegetables {
		if v.ID == id {
			return v, true
		}
	}
	return models.Vegetable{}, false
}

func (cat *Catalog) appendHistory(entryID string, oldPrice, newPrice float64) {
	cat.priceHistory = append(cat.priceHistory, models.PriceHistory{
		ID:           uuid.NewString(),
		PriceEntryID: entryID,
		OldPrice:     oldPrice,
		NewPrice:     newPrice,
		UpdatedAt:    cat.now(),
	})
}
