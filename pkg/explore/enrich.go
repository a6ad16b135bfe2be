package explore

import (
	"launchrate/pkg/access"
	"launchrate/pkg/ratings"
	"launchrate/pkg/startups"
	"launchrate/pkg/users"
)

// EnrichedStartup is the request-scoped read model served to listings:
// the base startup plus creator name, viewer-scoped rating data and the
// viewer's own engagement flags. Never persisted.
type EnrichedStartup struct {
	startups.Startup
	CreatorName      string                                `json:"creator_name"`
	AvgRating        float64                               `json:"avg_rating"`
	DimensionRatings map[string]ratings.DimensionAggregate `json:"dimension_ratings"`
	Saved            bool                                  `json:"saved"`
	Interested       bool                                  `json:"interested"`
	Ratings          []ratings.Rating                      `json:"ratings"`
}

type EnrichedList struct {
	Items []EnrichedStartup `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// EngagementFlags carries the viewer's saved/interest state for one startup.
type EngagementFlags struct {
	Saved      bool
	Interested bool
}

// Enrich builds the view-ready record for one (startup, viewer) pair.
// The startup-level gate applies first: viewers without access to
// sensitive data get the public fields with an empty rating section and a
// zero average, not an error. Viewers who pass it see only the individual
// ratings the per-rating gate allows, and aggregates are computed over
// exactly that visible set.
func Enrich(s startups.Startup, rs []ratings.Rating, grants []access.Grant, creator *users.User, viewerUUID string, flags EngagementFlags) EnrichedStartup {
	enriched := EnrichedStartup{
		Startup:          s,
		CreatorName:      creatorName(s.OwnerUUID, creator, viewerUUID),
		DimensionRatings: map[string]ratings.DimensionAggregate{},
		Saved:            flags.Saved,
		Interested:       flags.Interested,
		Ratings:          []ratings.Rating{},
	}

	if !access.CanViewSensitiveData(s.OwnerUUID, s.Visibility, viewerUUID, grants) {
		return enriched
	}

	for _, rt := range rs {
		if access.CanViewRating(s.OwnerUUID, rt.Visibility, rt.RaterUUID, viewerUUID, grants) {
			enriched.Ratings = append(enriched.Ratings, rt)
		}
	}

	agg := ratings.Aggregate(enriched.Ratings)
	enriched.AvgRating = agg.Overall
	enriched.DimensionRatings = agg.Dimensions
	return enriched
}

func creatorName(ownerUUID string, creator *users.User, viewerUUID string) string {
	if viewerUUID != "" && viewerUUID == ownerUUID {
		return "You"
	}
	if creator != nil && creator.Name != "" {
		return creator.Name
	}
	return "Unknown"
}
