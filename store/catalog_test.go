package store

import (
	"testing"
	"time"

	"mantatrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(now *time.Time) *Catalog {
	cat := NewCatalog()
	cat.now = func() time.Time { return *now }
	cat.vegetables = []models.Vegetable{
		{ID: "veg-1", Name: "Tomato", Category: "Fruit Vegetable"},
		{ID: "veg-2", Name: "Potato", Category: "Root Crop"},
		{ID: "veg-3", Name: "Onion", Category: "Bulb"},
	}
	return cat
}

func addTestEntry(t *testing.T, cat *Catalog, vegID string, price float64) models.PriceEntry {
	t.Helper()
	e, err := cat.AddEntry(NewEntryInput{
		VegetableID: vegID,
		Price:       price,
		Unit:        models.UnitKg,
		BuyerID:     "buyer-1",
		BuyerName:   "Demo Buyer",
		Market:      "Manila Market",
		Location:    "Manila",
	})
	require.NoError(t, err)
	return e
}

func TestAddEntryMintsDistinctIDs(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	ids := make(map[string]bool)
	var createdAts []time.Time
	for i := 0; i < 10; i++ {
		e := addTestEntry(t, cat, "veg-1", 40+float64(i))
		require.False(t, ids[e.ID], "id %q reused", e.ID)
		ids[e.ID] = true
		createdAts = append(createdAts, e.CreatedAt)
	}

	// Prior entries are untouched by later adds
	entries := cat.Entries()
	require.Len(t, entries, 10)
	for i, e := range entries {
		assert.True(t, e.CreatedAt.Equal(createdAts[i]))
	}
}

func TestAddEntrySnapshotsVegetableName(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-2", 35)
	assert.Equal(t, "Potato", e.VegetableName)
	assert.True(t, e.CreatedAt.Equal(e.UpdatedAt))

	_, err := cat.AddEntry(NewEntryInput{VegetableID: "veg-99", Price: 10, Unit: models.UnitKg})
	assert.ErrorIs(t, err, ErrVegetableNotFound)
}

func TestAddEntryNeverReusesDeletedIDs(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	first := addTestEntry(t, cat, "veg-1", 45)
	require.NoError(t, cat.DeleteEntry(first.ID))

	second := addTestEntry(t, cat, "veg-1", 50)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateEntryMergesAndStamps(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-1", 45)
	created := e.CreatedAt

	now = now.Add(time.Hour)
	newPrice := 50.0
	notes := "bulk discount available"
	updated, err := cat.UpdateEntry(e.ID, models.PriceEntryUpdate{Price: &newPrice, Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.Price)
	assert.Equal(t, "bulk discount available", updated.Notes)
	assert.Equal(t, models.UnitKg, updated.Unit, "unset fields keep their value")
	assert.True(t, updated.CreatedAt.Equal(created))
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestUpdateEntryNotFound(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	_, err := cat.UpdateEntry("missing", models.PriceEntryUpdate{})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	assert.ErrorIs(t, cat.DeleteEntry("missing"), ErrEntryNotFound)
}

func TestUpdateEntryAppendsHistoryOnPriceChange(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-1", 45)
	require.Empty(t, cat.History(e.ID))

	newPrice := 50.0
	_, err := cat.UpdateEntry(e.ID, models.PriceEntryUpdate{Price: &newPrice})
	require.NoError(t, err)

	history := cat.History(e.ID)
	require.Len(t, history, 1)
	assert.Equal(t, 45.0, history[0].OldPrice)
	assert.Equal(t, 50.0, history[0].NewPrice)

	// Same price again is not a price change
	_, err = cat.UpdateEntry(e.ID, models.PriceEntryUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Len(t, cat.History(e.ID), 1)

	// Non-price edits never touch the history
	notes := "note"
	_, err = cat.UpdateEntry(e.ID, models.PriceEntryUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Len(t, cat.History(e.ID), 1)
}

func TestUpdateEntryReresolvesVegetableName(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-1", 45)

	vegID := "veg-3"
	updated, err := cat.UpdateEntry(e.ID, models.PriceEntryUpdate{VegetableID: &vegID})
	require.NoError(t, err)
	assert.Equal(t, "Onion", updated.VegetableName)

	bad := "veg-99"
	_, err = cat.UpdateEntry(e.ID, models.PriceEntryUpdate{VegetableID: &bad})
	assert.ErrorIs(t, err, ErrVegetableNotFound)
}

func TestBulkUpdateTouchesOnlyListedIDs(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	cat := testCatalog(&now)

	a := addTestEntry(t, cat, "veg-1", 10)
	b := addTestEntry(t, cat, "veg-2", 20)
	cEntry := addTestEntry(t, cat, "veg-3", 30)
	before := now

	now = now.Add(time.Hour)
	updated := cat.BulkUpdatePrices([]PriceChange{{ID: b.ID, NewPrice: 25}})
	assert.Equal(t, 1, updated)

	gotA, _ := cat.Entry(a.ID)
	gotB, _ := cat.Entry(b.ID)
	gotC, _ := cat.Entry(cEntry.ID)

	assert.Equal(t, 10.0, gotA.Price)
	assert.Equal(t, 25.0, gotB.Price)
	assert.Equal(t, 30.0, gotC.Price)

	assert.True(t, gotA.UpdatedAt.Equal(before))
	assert.True(t, gotB.UpdatedAt.After(before))
	assert.True(t, gotC.UpdatedAt.Equal(before))

	// The change landed in the history exactly once
	history := cat.History(b.ID)
	require.Len(t, history, 1)
	assert.Equal(t, 20.0, history[0].OldPrice)
	assert.Equal(t, 25.0, history[0].NewPrice)
	assert.Empty(t, cat.History(a.ID))
}

func TestBulkUpdateEqualPriceStampsWithoutHistory(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-1", 45)
	before := now

	now = now.Add(time.Hour)
	updated := cat.BulkUpdatePrices([]PriceChange{{ID: e.ID, NewPrice: 45}})
	assert.Equal(t, 1, updated)

	got, _ := cat.Entry(e.ID)
	assert.True(t, got.UpdatedAt.After(before), "listed entries are stamped even without a price change")
	assert.Empty(t, cat.History(e.ID))
}

func TestBulkUpdateIgnoresUnknownIDs(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	addTestEntry(t, cat, "veg-1", 45)
	updated := cat.BulkUpdatePrices([]PriceChange{{ID: "missing", NewPrice: 99}})
	assert.Equal(t, 0, updated)
}

func TestSetFiltersShallowMerge(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	veg := "Tomato"
	cat.SetFilters(models.FilterPatch{Vegetable: &veg})

	market := "Manila Market"
	got := cat.SetFilters(models.FilterPatch{Market: &market})

	assert.Equal(t, "Tomato", got.Vegetable, "earlier fields survive later patches")
	assert.Equal(t, "Manila Market", got.Market)

	// Pointing at a zero value clears a field
	empty := ""
	got = cat.SetFilters(models.FilterPatch{Vegetable: &empty})
	assert.Equal(t, "", got.Vegetable)
	assert.Equal(t, "Manila Market", got.Market)

	from := now
	cat.SetFilters(models.FilterPatch{DateFrom: &from})
	require.NotNil(t, cat.Filters().DateFrom)

	zero := time.Time{}
	cat.SetFilters(models.FilterPatch{DateFrom: &zero})
	assert.Nil(t, cat.Filters().DateFrom)

	cat.ClearFilters()
	assert.Equal(t, models.FilterOptions{}, cat.Filters())
}

func TestSelection(t *testing.T) {
	now := time.Now()
	cat := testCatalog(&now)

	_, ok := cat.Selected()
	assert.False(t, ok)

	e := addTestEntry(t, cat, "veg-1", 45)
	require.NoError(t, cat.Select(e.ID))

	sel, ok := cat.Selected()
	require.True(t, ok)
	assert.Equal(t, e.ID, sel.ID)

	assert.ErrorIs(t, cat.Select("missing"), ErrEntryNotFound)

	cat.ClearSelection()
	_, ok = cat.Selected()
	assert.False(t, ok)
}

func TestHistoryIsOldestFirst(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	cat := testCatalog(&now)

	e := addTestEntry(t, cat, "veg-1", 40)
	for _, p := range []float64{45, 50, 42} {
		price := p
		now = now.Add(time.Hour)
		_, err := cat.UpdateEntry(e.ID, models.PriceEntryUpdate{Price: &price})
		require.NoError(t, err)
	}

	history := cat.History(e.ID)
	require.Len(t, history, 3)
	assert.Equal(t, 40.0, history[0].OldPrice)
	assert.Equal(t, 45.0, history[1].OldPrice)
	assert.Equal(t, 50.0, history[2].OldPrice)
	assert.Equal(t, 42.0, history[2].NewPrice)
}
