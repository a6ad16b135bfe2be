package explore

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"launchrate/pkg/startups"
)

// ErrBadQuery marks a malformed or unrecognized filter/sort parameter.
// Unknown values are rejected at this boundary instead of silently
// defaulting.
var ErrBadQuery = errors.New("bad query")

const (
	SortByName      = "name"
	SortByRating    = "rating"
	SortByCreatedAt = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// FilterQuery is the typed filter/sort configuration applied by the
// engine. The zero value matches everything and applies no reordering.
// Within a category selected values are OR'd; categories are AND'd.
type FilterQuery struct {
	SearchTerm  string
	Tags        []string
	Visibility  []string
	Status      []string
	MinRating   float64
	MaxRating   float64 // 0 means unbounded (treated as 5)
	SortKey     string
	SortDir     string
	ActiveFirst bool
}

// ParseQuery decodes and validates listing query parameters. The rating
// slider defaults to [1,5], which excludes unrated startups; pass
// min_rating=0 to include them. Sort defaults to newest first.
func ParseQuery(values url.Values) (FilterQuery, error) {
	q := FilterQuery{
		SearchTerm: strings.TrimSpace(values.Get("search")),
		Tags:       splitList(values.Get("tags")),
		Visibility: splitList(values.Get("visibility")),
		Status:     splitList(values.Get("status")),
		MinRating:  1,
		MaxRating:  5,
		SortKey:    SortByCreatedAt,
		SortDir:    OrderDesc,
	}

	for _, v := range q.Visibility {
		if !startups.IsValidVisibility(v) {
			return FilterQuery{}, fmt.Errorf("%w: unknown visibility %q", ErrBadQuery, v)
		}
	}

	var err error
	if q.MinRating, err = parseRating(values.Get("min_rating"), 1); err != nil {
		return FilterQuery{}, err
	}
	if q.MaxRating, err = parseRating(values.Get("max_rating"), 5); err != nil {
		return FilterQuery{}, err
	}
	if q.MinRating > q.MaxRating {
		return FilterQuery{}, fmt.Errorf("%w: min_rating above max_rating", ErrBadQuery)
	}

	if v := values.Get("sort"); v != "" {
		switch v {
		case SortByName, SortByRating, SortByCreatedAt:
			q.SortKey = v
		default:
			return FilterQuery{}, fmt.Errorf("%w: unknown sort key %q", ErrBadQuery, v)
		}
	}
	if v := values.Get("order"); v != "" {
		switch v {
		case OrderAsc, OrderDesc:
			q.SortDir = v
		default:
			return FilterQuery{}, fmt.Errorf("%w: unknown sort order %q", ErrBadQuery, v)
		}
	}
	if v := values.Get("active_first"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return FilterQuery{}, fmt.Errorf("%w: invalid active_first %q", ErrBadQuery, v)
		}
		q.ActiveFirst = b
	}

	return q, nil
}

func parseRating(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 5 {
		return 0, fmt.Errorf("%w: invalid rating bound %q", ErrBadQuery, raw)
	}
	return f, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
