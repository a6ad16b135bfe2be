package explore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"launchrate/pkg/startups"
)

func enriched(id int64, name, status string, avg float64) EnrichedStartup {
	return EnrichedStartup{
		Startup: startups.Startup{
			ID:        id,
			Name:      name,
			Status:    status,
			CreatedAt: time.Unix(1700000000+id, 0),
		},
		AvgRating: avg,
	}
}

func names(items []EnrichedStartup) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFilterAndSort_EmptySearchMatchesAll(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "Alpha", "Active", 3),
		enriched(2, "Beta", "Paused", 4),
	}

	result := FilterAndSort(items, FilterQuery{SearchTerm: ""})
	require.Len(t, result, 2)
}

func TestFilterAndSort_SearchIsCaseInsensitive(t *testing.T) {
	items := []EnrichedStartup{
		{Startup: startups.Startup{ID: 1, Name: "RocketFuel"}},
		{Startup: startups.Startup{ID: 2, Name: "Other", Summary: "rocket adjacent"}},
		{Startup: startups.Startup{ID: 3, Name: "Other", Description: "no match here"}},
	}

	result := FilterAndSort(items, FilterQuery{SearchTerm: "ROCKET"})
	require.Len(t, result, 2)
}

func TestFilterAndSort_Idempotent(t *testing.T) {
	items := []EnrichedStartup{
		enriched(3, "Gamma", "Active", 4.5),
		enriched(1, "Alpha", "Paused", 2),
		enriched(2, "Beta", "Active", 3.5),
	}
	q := FilterQuery{MinRating: 3, SortKey: SortByRating, SortDir: OrderDesc, ActiveFirst: true}

	once := FilterAndSort(items, q)
	twice := FilterAndSort(once, q)
	require.Equal(t, once, twice)
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	items := []EnrichedStartup{
		enriched(2, "Beta", "", 0),
		enriched(1, "Alpha", "", 0),
	}

	_ = FilterAndSort(items, FilterQuery{SortKey: SortByName, SortDir: OrderAsc})
	require.Equal(t, "Beta", items[0].Name)
	require.Equal(t, "Alpha", items[1].Name)
}

func TestFilterAndSort_TagsIntersect(t *testing.T) {
	items := []EnrichedStartup{
		{Startup: startups.Startup{ID: 1, Name: "A", Tags: []string{"fintech", "ai"}}},
		{Startup: startups.Startup{ID: 2, Name: "B", Tags: []string{"biotech"}}},
		{Startup: startups.Startup{ID: 3, Name: "C"}},
	}

	result := FilterAndSort(items, FilterQuery{Tags: []string{"ai", "devtools"}})
	require.Equal(t, []string{"A"}, names(result))
}

func TestFilterAndSort_StatusAndVisibilityFacets(t *testing.T) {
	items := []EnrichedStartup{
		{Startup: startups.Startup{ID: 1, Name: "A", Status: "Active", Visibility: "public"}},
		{Startup: startups.Startup{ID: 2, Name: "B", Status: "Paused", Visibility: "public"}},
		{Startup: startups.Startup{ID: 3, Name: "C", Status: "Active", Visibility: "private"}},
	}

	result := FilterAndSort(items, FilterQuery{Status: []string{"Active"}, Visibility: []string{"public"}})
	require.Equal(t, []string{"A"}, names(result))
}

func TestFilterAndSort_RatingBoundsExcludeUnrated(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "Rated", "", 3.5),
		enriched(2, "Unrated", "", 0),
	}

	// Unrated counts as 0, so any positive lower bound drops it.
	result := FilterAndSort(items, FilterQuery{MinRating: 1})
	require.Equal(t, []string{"Rated"}, names(result))

	// A zero lower bound keeps it.
	result = FilterAndSort(items, FilterQuery{MinRating: 0})
	require.Len(t, result, 2)
}

func TestFilterAndSort_RatingUpperBound(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "Low", "", 2),
		enriched(2, "High", "", 4.8),
	}

	result := FilterAndSort(items, FilterQuery{MaxRating: 3})
	require.Equal(t, []string{"Low"}, names(result))
}

func TestFilterAndSort_SortByNameCaseInsensitive(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "beta", "", 0),
		enriched(2, "Alpha", "", 0),
		enriched(3, "gamma", "", 0),
	}

	result := FilterAndSort(items, FilterQuery{SortKey: SortByName, SortDir: OrderAsc})
	require.Equal(t, []string{"Alpha", "beta", "gamma"}, names(result))

	result = FilterAndSort(items, FilterQuery{SortKey: SortByName, SortDir: OrderDesc})
	require.Equal(t, []string{"gamma", "beta", "Alpha"}, names(result))
}

func TestFilterAndSort_SortByRatingDesc(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "Mid", "", 3),
		enriched(2, "Top", "", 4.9),
		enriched(3, "Unrated", "", 0),
	}

	result := FilterAndSort(items, FilterQuery{SortKey: SortByRating, SortDir: OrderDesc})
	require.Equal(t, []string{"Top", "Mid", "Unrated"}, names(result))
}

func TestFilterAndSort_ActiveFirst(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "B", "Draft", 0),
		enriched(2, "A", "Active", 0),
		enriched(3, "Z", "Active", 0),
	}

	result := FilterAndSort(items, FilterQuery{SortKey: SortByName, SortDir: OrderAsc, ActiveFirst: true})
	require.Equal(t, []string{"A", "Z", "B"}, names(result))
}

func TestFilterAndSort_ActiveFirstSurvivesDescending(t *testing.T) {
	items := []EnrichedStartup{
		enriched(1, "B", "Draft", 0),
		enriched(2, "A", "Active", 0),
		enriched(3, "Z", "Active", 0),
	}

	// Active partition stays first even when the key is descending.
	result := FilterAndSort(items, FilterQuery{SortKey: SortByName, SortDir: OrderDesc, ActiveFirst: true})
	require.Equal(t, []string{"Z", "A", "B"}, names(result))
}

func TestFilterAndSort_TieBreakByID(t *testing.T) {
	a := enriched(2, "Same", "", 3)
	b := enriched(1, "Same", "", 3)

	result := FilterAndSort([]EnrichedStartup{a, b}, FilterQuery{SortKey: SortByName, SortDir: OrderAsc})
	require.Equal(t, int64(1), result[0].ID)
	require.Equal(t, int64(2), result[1].ID)

	// Deterministic regardless of input order.
	result = FilterAndSort([]EnrichedStartup{b, a}, FilterQuery{SortKey: SortByName, SortDir: OrderAsc})
	require.Equal(t, int64(1), result[0].ID)
}

func TestFilterAndSort_UnknownKeyLeavesOrder(t *testing.T) {
	items := []EnrichedStartup{
		enriched(2, "Beta", "", 0),
		enriched(1, "Alpha", "", 0),
	}

	result := FilterAndSort(items, FilterQuery{SortKey: "mystery"})
	require.Equal(t, []string{"Beta", "Alpha"}, names(result))
}

func TestFilterAndSort_SortByCreatedAt(t *testing.T) {
	items := []EnrichedStartup{
		enriched(3, "Newest", "", 0),
		enriched(1, "Oldest", "", 0),
		enriched(2, "Middle", "", 0),
	}

	result := FilterAndSort(items, FilterQuery{SortKey: SortByCreatedAt, SortDir: OrderDesc})
	require.Equal(t, []string{"Newest", "Middle", "Oldest"}, names(result))
}
