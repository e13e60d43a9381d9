package store

import (
	"sort"
	"strings"
	"time"

	"mantatrack/models"
)

// StaleAfter is how long a price may sit untouched before it counts as stale.
// Exactly StaleAfter old is still fresh.
const StaleAfter = 48 * time.Hour

// Query derives the filtered, sorted view of entries for the price board.
// Filters apply in order: free-text search, vegetable name, market, date
// bounds, then a stable sort. Without a sort key the insertion order is kept.
func Query(entries []models.PriceEntry, filters models.FilterOptions, searchTerm string) []models.PriceEntry {
	filtered := make([]models.PriceEntry, 0, len(entries))

	search := strings.ToLower(strings.TrimSpace(searchTerm))
	for _, e := range entries {
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if filters.Vegetable != "" && e.VegetableName != filters.Vegetable {
			continue
		}
		if filters.Market != "" && e.Market != filters.Market {
			continue
		}
		if filters.DateFrom != nil && e.UpdatedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && e.UpdatedAt.After(*filters.DateTo) {
			continue
		}
		filtered = append(filtered, e)
	}

	switch filters.SortBy {
	case models.SortByPrice:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filters.SortOrder == models.SortDesc {
				return filtered[i].Price > filtered[j].Price
			}
			return filtered[i].Price < filtered[j].Price
		})
	case models.SortByUpdatedAt:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filters.SortOrder == models.SortDesc {
				return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
			}
			return filtered[i].UpdatedAt.Before(filtered[j].UpdatedAt)
		})
	}

	return filtered
}

func matchesSearch(e models.PriceEntry, search string) bool {
	return strings.Contains(strings.ToLower(e.VegetableName), search) ||
		strings.Contains(strings.ToLower(e.BuyerName), search) ||
		strings.Contains(strings.ToLower(e.Market), search)
}

// IsStale reports whether an entry's last update is more than StaleAfter
// before now.
func IsStale(e models.PriceEntry, now time.Time) bool {
	return now.Sub(e.UpdatedAt) > StaleAfter
}

// Stats summarizes entries for the buyer dashboard. Average price is 0 and
// LastUpdate the zero time when entries is empty.
func Stats(entries []models.PriceEntry, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	var total float64
	for _, e := range entries {
		total += e.Price
		if IsStale(e, now) {
			stats.StaleCount++
		}
		if e.UpdatedAt.After(stats.LastUpdate) {
			stats.LastUpdate = e.UpdatedAt
		}
	}
	stats.AveragePrice = total / float64(len(entries))
	return stats
}

// Markets returns the unique market names across entries, sorted.
func Markets(entries []models.PriceEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.Market] {
			seen[e.Market] = true
			out = append(out, e.Market)
		}
	}
	sort.Strings(out)
	return out
}
