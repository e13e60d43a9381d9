package models

import (
	"time"
)

// Valid units for a price entry.
const (
	UnitKg     = "kg"
	UnitPc     = "pc"
	UnitBundle = "bundle"
)

// PriceEntry is one buyer's currently quoted purchase price for one vegetable
// at one market. VegetableName is a snapshot taken when the entry is created;
// it is never rewritten if the reference list changes.
type PriceEntry struct {
	ID                string    `json:"id"`
	VegetableID       string    `json:"vegetable_id"`
	VegetableName     string    `json:"vegetable_name"`
	Price             float64   `json:"price"`
	Unit              string    `json:"unit"`
	BuyerID           string    `json:"buyer_id"`
	BuyerName         string    `json:"buyer_name"`
	Market            string    `json:"market"`
	Location          string    `json:"location"`
	AvailableQuantity float64   `json:"available_quantity,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PriceEntryUpdate carries the editable fields of a price entry. Nil fields
// are left untouched by an update.
type PriceEntryUpdate struct {
	VegetableID       *string  `json:"vegetable_id"`
	Price             *float64 `json:"price"`
	Unit              *string  `json:"unit"`
	Market            *string  `json:"market"`
	Location          *string  `json:"location"`
	AvailableQuantity *float64 `json:"available_quantity"`
	Notes             *string  `json:"notes"`
}
