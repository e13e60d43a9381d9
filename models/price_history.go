package models

import (
	"time"
)

// PriceHistory records one price change on a price entry. Records are
// append-only, never mutated or deleted once written.
type PriceHistory struct {
	ID           string    `json:"id"`
	PriceEntryID string    `json:"price_entry_id"`
	OldPrice     float64   `json:"old_price"`
	NewPrice     float64   `json:"new_price"`
	UpdatedAt    time.Time `json:"updated_at"`
}
