package explore

import (
	"sort"
	"strings"

	"launchrate/pkg/startups"
)

// FilterAndSort applies the query's predicates (AND across categories, OR
// within) and then orders the survivors. The input slice is never
// mutated. Ordering is deterministic: ties on the chosen key fall back to
// startup ID ascending.
func FilterAndSort(items []EnrichedStartup, q FilterQuery) []EnrichedStartup {
	filtered := make([]EnrichedStartup, 0, len(items))
	for _, item := range items {
		if matches(item, q) {
			filtered = append(filtered, item)
		}
	}
	sortItems(filtered, q)
	return filtered
}

func matches(item EnrichedStartup, q FilterQuery) bool {
	if !matchesSearch(item, q.SearchTerm) {
		return false
	}
	if len(q.Tags) > 0 && !intersects(item.Tags, q.Tags) {
		return false
	}
	if len(q.Visibility) > 0 && !contains(q.Visibility, item.Visibility) {
		return false
	}
	if len(q.Status) > 0 && !contains(q.Status, item.Status) {
		return false
	}

	// Unrated startups count as 0, so any positive lower bound drops them.
	max := q.MaxRating
	if max == 0 {
		max = 5
	}
	if item.AvgRating < q.MinRating || item.AvgRating > max {
		return false
	}
	return true
}

func matchesSearch(item EnrichedStartup, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range []string{item.Name, item.Summary, item.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortItems(items []EnrichedStartup, q FilterQuery) {
	if q.SortKey != SortByName && q.SortKey != SortByRating && q.SortKey != SortByCreatedAt {
		// Malformed input never panics; an unknown key means no reordering.
		// The parse boundary rejects these before they get here.
		return
	}

	desc := q.SortDir == OrderDesc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if q.ActiveFirst {
			aActive := a.Status == startups.StatusActive
			bActive := b.Status == startups.StatusActive
			if aActive != bActive {
				return aActive
			}
		}

		if c := compareKey(a, b, q.SortKey); c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		return a.ID < b.ID
	})
}

func compareKey(a, b EnrichedStartup, key string) int {
	switch key {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByRating:
		switch {
		case a.AvgRating < b.AvgRating:
			return -1
		case a.AvgRating > b.AvgRating:
			return 1
		}
	case SortByCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
	}
	return 0
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if contains(b, x) {
			return true
		}
	}
	return false
}
