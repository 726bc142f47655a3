package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// SortItems orders items in place by policy. Every policy falls back to
// ascending ID so the order is total and repeatable for a fixed input.
// SortByRelevance without a query degrades to SortByTitle.
func SortItems(items []domain.CatalogItem, policy domain.SortPolicy) {
	switch policy {
	case domain.SortByPopularity:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if a.Popularity != b.Popularity {
				return a.Popularity > b.Popularity
			}
			return a.ID < b.ID
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return titleLess(items[i], items[j])
		})
	}
}

// SortItemsForQuery orders items in place by how well their display title
// matches query
func SortItemsForQuery(items []domain.CatalogItem, query string) {
	query = strings.ToLower(strings.TrimSpace(query))

	scores := make(map[int]int, len(items))
	for _, item := range items {
		scores[item.ID] = matchScore(strings.ToLower(item.DisplayTitle()), query)
	}

	sort.SliceStable(items, func(i, j int) bool {
		si, sj := scores[items[i].ID], scores[items[j].ID]
		if si != sj {
			return si < sj
		}
		return titleLess(items[i], items[j])
	})
}

// FilterByTitle keeps items whose display title contains query, ignoring case
func FilterByTitle(items []domain.CatalogItem, query string) []domain.CatalogItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	filtered := make([]domain.CatalogItem, 0)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.DisplayTitle()), query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// matchScore ranks a lowercase title against a lowercase query.
// Lower score = better match
func matchScore(title, query string) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50 + fuzzy.LevenshteinDistance(query, title)
	}
	return 1000 + fuzzy.LevenshteinDistance(query, title)
}

func titleLess(a, b domain.CatalogItem) bool {
	ta, tb := strings.ToLower(a.DisplayTitle()), strings.ToLower(b.DisplayTitle())
	if ta != tb {
		return ta < tb
	}
	return a.ID < b.ID
}
