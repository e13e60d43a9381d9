package models

import (
	"time"
)

// Sort keys and orders accepted by FilterOptions.
const (
	SortByPrice     = "price"
	SortByUpdatedAt = "updatedAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterOptions describes one browsing session's view of the price board.
// Zero values mean "no filter". It is never persisted.
type FilterOptions struct {
	Vegetable string     `json:"vegetable,omitempty"`
	Market    string     `json:"market,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
	Search    string     `json:"search,omitempty"`
	SortBy    string     `json:"sort_by,omitempty"`
	SortOrder string     `json:"sort_order,omitempty"`
}

// FilterPatch is a partial FilterOptions for shallow merges. Nil fields keep
// the current value; to clear a field, point at its zero value (a zero time
// clears a date bound).
type FilterPatch struct {
	Vegetable *string    `json:"vegetable"`
	Market    *string    `json:"market"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Search    *string    `json:"search"`
	SortBy    *string    `json:"sort_by"`
	SortOrder *string    `json:"sort_order"`
}

// DashboardStats summarizes a set of price entries for the buyer dashboard.
// LastUpdate is the zero time when the set is empty.
type DashboardStats struct {
	TotalEntries int       `json:"total_entries"`
	AveragePrice float64   `json:"average_price"`
	StaleCount   int       `json:"stale_count"`
	LastUpdate   time.Time `json:"last_update"`
}
