package internal

import (
	"net/http"
	"strings"

	"lostfound-api/internal/models"
)

// itemFilter holds common query parameters for the open-pool listing
type itemFilter struct {
	q        string
	category string
	location string
}

func (f itemFilter) empty() bool {
	return f.q == "" && f.category == "" && f.location == ""
}

// parseItemFilter parses q, category, and location from the request.
// All filters default to empty, which matches everything.
func parseItemFilter(r *http.Request) itemFilter {
	values := r.URL.Query()
	return itemFilter{
		q:        strings.TrimSpace(values.Get("q")),
		category: strings.TrimSpace(values.Get("category")),
		location: strings.TrimSpace(values.Get("location")),
	}
}

// filterItems applies f to items, preserving submission order.
// q matches the item name case-insensitively; category and location
// must match exactly.
func filterItems(items []models.Item, f itemFilter) []models.Item {
	if f.empty() {
		return items
	}
	q := strings.ToLower(f.q)
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		if f.category != "" && it.Category != f.category {
			continue
		}
		if f.location != "" && it.Location != f.location {
			continue
		}
		out = append(out, it)
	}
	return out
}
