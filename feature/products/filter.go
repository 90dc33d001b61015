package products

import (
	"strings"

	"merch-manager/core/catalog"
)

// FilterEntries keeps entries whose name, id or type contains query,
// ignoring case. An empty query keeps everything.
func FilterEntries(entries []catalog.Entry, query string) []catalog.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		p := e.Product
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.ProductID), q) ||
			strings.Contains(strings.ToLower(string(p.Type)), q) {
			out = append(out, e)
		}
	}
	return out
}
