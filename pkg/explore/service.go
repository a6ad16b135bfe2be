package explore

import (
	"context"

	"launchrate/pkg/access"
	"launchrate/pkg/engage"
	"launchrate/pkg/ratings"
	"launchrate/pkg/startups"
	"launchrate/pkg/users"
)

type ExploreService interface {
	Explore(ctx context.Context, viewerUUID string, q FilterQuery, page, limit int) (EnrichedList, error)
	Dashboard(ctx context.Context, ownerUUID string, q FilterQuery, page, limit int) (EnrichedList, error)
	Saved(ctx context.Context, viewerUUID string, q FilterQuery, page, limit int) (EnrichedList, error)
}

type exploreService struct {
	startupRepo startups.StartupRepository
	ratingRepo  ratings.RatingRepository
	grantRepo   access.GrantRepository
	engageRepo  engage.EngagementRepository
	userRepo    users.UserRepository
}

func NewExploreService(
	startupRepo startups.StartupRepository,
	ratingRepo ratings.RatingRepository,
	grantRepo access.GrantRepository,
	engageRepo engage.EngagementRepository,
	userRepo users.UserRepository,
) ExploreService {
	return &exploreService{
		startupRepo: startupRepo,
		ratingRepo:  ratingRepo,
		grantRepo:   grantRepo,
		engageRepo:  engageRepo,
		userRepo:    userRepo,
	}
}

// Explore serves the public listing. The coarse facets are pushed down to
// the database; rating bounds and viewer-scoped data are resolved in
// memory. Non-public startups stay listed with their public fields only;
// the enricher blanks their sensitive data per viewer.
func (s *exploreService) Explore(ctx context.Context, viewerUUID string, q FilterQuery, page, limit int) (EnrichedList, error) {
	base, err := s.startupRepo.ListStartups(ctx, startups.ListFilter{
		Search:     q.SearchTerm,
		Visibility: q.Visibility,
		Status:     q.Status,
		Tags:       q.Tags,
	})
	if err != nil {
		return EnrichedList{}, err
	}
	return s.assemble(ctx, base, viewerUUID, q, page, limit)
}

// Dashboard serves the owner's own startups.
func (s *exploreService) Dashboard(ctx context.Context, ownerUUID string, q FilterQuery, page, limit int) (EnrichedList, error) {
	base, err := s.startupRepo.ListStartupsByOwner(ctx, ownerUUID)
	if err != nil {
		return EnrichedList{}, err
	}
	return s.assemble(ctx, base, ownerUUID, q, page, limit)
}

// Saved serves the viewer's saved list.
func (s *exploreService) Saved(ctx context.Context, viewerUUID string, q FilterQuery, page, limit int) (EnrichedList, error) {
	engagements, err := s.engageRepo.ListByUser(ctx, viewerUUID)
	if err != nil {
		return EnrichedList{}, err
	}

	ids := make([]int64, 0, len(engagements))
	for _, e := range engagements {
		if e.Type == engage.TypeSaved {
			ids = append(ids, e.StartupID)
		}
	}

	base, err := s.startupRepo.GetStartupsByIDs(ctx, ids)
	if err != nil {
		return EnrichedList{}, err
	}
	return s.assemble(ctx, base, viewerUUID, q, page, limit)
}

// assemble runs the enrichment pipeline over a base set, then filters,
// sorts and paginates. Every lookup is one batched round trip.
func (s *exploreService) assemble(ctx context.Context, base []startups.Startup, viewerUUID string, q FilterQuery, page, limit int) (EnrichedList, error) {
	ids := make([]int64, 0, len(base))
	ownerSet := make(map[string]bool)
	for _, st := range base {
		ids = append(ids, st.ID)
		ownerSet[st.OwnerUUID] = true
	}
	owners := make([]string, 0, len(ownerSet))
	for uuid := range ownerSet {
		owners = append(owners, uuid)
	}

	ratingsBy, err := s.ratingRepo.ListByStartups(ctx, ids)
	if err != nil {
		return EnrichedList{}, err
	}
	grantsBy, err := s.grantRepo.ListGrantsByStartups(ctx, ids)
	if err != nil {
		return EnrichedList{}, err
	}
	creators, err := s.userRepo.GetUsersByUUIDs(ctx, owners)
	if err != nil {
		return EnrichedList{}, err
	}

	flagsBy := make(map[int64]EngagementFlags)
	if viewerUUID != "" {
		engagements, err := s.engageRepo.ListByUser(ctx, viewerUUID)
		if err != nil {
			return EnrichedList{}, err
		}
		for _, e := range engagements {
			f := flagsBy[e.StartupID]
			switch e.Type {
			case engage.TypeSaved:
				f.Saved = true
			case engage.TypeInterest:
				f.Interested = true
			}
			flagsBy[e.StartupID] = f
		}
	}

	enriched := make([]EnrichedStartup, 0, len(base))
	for _, st := range base {
		var creator *users.User
		if u, ok := creators[st.OwnerUUID]; ok {
			creator = &u
		}
		enriched = append(enriched, Enrich(st, ratingsBy[st.ID], grantsBy[st.ID], creator, viewerUUID, flagsBy[st.ID]))
	}

	result := FilterAndSort(enriched, q)
	total := int64(len(result))

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if end > len(result) {
		end = len(result)
	}

	return EnrichedList{Items: result[start:end], Total: total, Page: page, Limit: limit}, nil
}
