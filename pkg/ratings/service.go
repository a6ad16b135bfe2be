package ratings

import (
	"context"
	"errors"
	"fmt"

	"launchrate/pkg/access"
	"launchrate/pkg/startups"
)

var (
	ErrOwnRating         = errors.New("owners cannot rate their own startup")
	ErrInvalidDimension  = errors.New("invalid rating dimension")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
	ErrInvalidVisibility = errors.New("invalid rating visibility")
	ErrDuplicateDim      = errors.New("duplicate dimension in submission")
)

// RatingView is what a viewer gets back for one startup: the ratings they
// are allowed to see plus aggregates computed over exactly that set.
type RatingView struct {
	Ratings   []Rating        `json:"ratings"`
	Aggregate AggregateResult `json:"aggregate"`
}

type RatingService interface {
	Submit(ctx context.Context, startupID int64, raterUUID string, entries []Rating) ([]Rating, error)
	ListVisible(ctx context.Context, startupID int64, viewerUUID string) (RatingView, error)
	Clear(ctx context.Context, startupID int64, raterUUID string) error
}

type ratingService struct {
	repo        RatingRepository
	startupRepo startups.StartupRepository
	grantRepo   access.GrantRepository
}

func NewRatingService(repo RatingRepository, startupRepo startups.StartupRepository, grantRepo access.GrantRepository) RatingService {
	return &ratingService{repo: repo, startupRepo: startupRepo, grantRepo: grantRepo}
}

func (s *ratingService) Submit(ctx context.Context, startupID int64, raterUUID string, entries []Rating) ([]Rating, error) {
	if len(entries) == 0 {
		return nil, errors.New("no ratings supplied")
	}

	seen := make(map[string]bool, len(entries))
	for i := range entries {
		e := &entries[i]
		if !IsValidDimension(e.Dimension) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDimension, e.Dimension)
		}
		if e.Score < 1 || e.Score > 5 {
			return nil, ErrInvalidScore
		}
		if e.Visibility == "" {
			e.Visibility = VisibilityPublic
		}
		if !IsValidVisibility(e.Visibility) {
			return nil, ErrInvalidVisibility
		}
		if seen[e.Dimension] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDim, e.Dimension)
		}
		seen[e.Dimension] = true
	}

	ownerUUID, err := s.startupRepo.OwnerUUID(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if ownerUUID == raterUUID {
		return nil, ErrOwnRating
	}

	return s.repo.ReplaceRatings(ctx, startupID, raterUUID, entries)
}

func (s *ratingService) ListVisible(ctx context.Context, startupID int64, viewerUUID string) (RatingView, error) {
	startup, err := s.startupRepo.GetStartupByID(ctx, startupID)
	if err != nil {
		return RatingView{}, err
	}

	grants, err := s.grantRepo.ListGrantsByStartup(ctx, startupID)
	if err != nil {
		return RatingView{}, err
	}

	// Startup-level gate first: a viewer without access gets the empty
	// view, not an error.
	view := RatingView{Ratings: []Rating{}, Aggregate: Aggregate(nil)}
	if !access.CanViewSensitiveData(startup.OwnerUUID, startup.Visibility, viewerUUID, grants) {
		return view, nil
	}

	all, err := s.repo.ListByStartup(ctx, startupID)
	if err != nil {
		return RatingView{}, err
	}

	for _, rt := range all {
		if access.CanViewRating(startup.OwnerUUID, rt.Visibility, rt.RaterUUID, viewerUUID, grants) {
			view.Ratings = append(view.Ratings, rt)
		}
	}
	view.Aggregate = Aggregate(view.Ratings)
	return view, nil
}

func (s *ratingService) Clear(ctx context.Context, startupID int64, raterUUID string) error {
	return s.repo.DeleteByRater(ctx, startupID, raterUUID)
}
