package explore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"launchrate/pkg/access"
	"launchrate/pkg/engage"
	"launchrate/pkg/ratings"
	"launchrate/pkg/startups"
	"launchrate/pkg/users"
)

type mockStartupRepository struct {
	mock.Mock
}

func (m *mockStartupRepository) CreateStartup(ctx context.Context, input startups.Startup) (startups.Startup, error) {
	args := m.Called(ctx, input)
	s, _ := args.Get(0).(startups.Startup)
	return s, args.Error(1)
}

func (m *mockStartupRepository) UpdateStartup(ctx context.Context, input startups.Startup) (startups.Startup, error) {
	args := m.Called(ctx, input)
	s, _ := args.Get(0).(startups.Startup)
	return s, args.Error(1)
}

func (m *mockStartupRepository) DeleteStartup(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStartupRepository) GetStartupByID(ctx context.Context, id int64) (startups.Startup, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(startups.Startup)
	return s, args.Error(1)
}

func (m *mockStartupRepository) GetStartupsByIDs(ctx context.Context, ids []int64) ([]startups.Startup, error) {
	args := m.Called(ctx, ids)
	s, _ := args.Get(0).([]startups.Startup)
	return s, args.Error(1)
}

func (m *mockStartupRepository) OwnerUUID(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockStartupRepository) ListStartups(ctx context.Context, filter startups.ListFilter) ([]startups.Startup, error) {
	args := m.Called(ctx, filter)
	s, _ := args.Get(0).([]startups.Startup)
	return s, args.Error(1)
}

func (m *mockStartupRepository) ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]startups.Startup, error) {
	args := m.Called(ctx, ownerUUID)
	s, _ := args.Get(0).([]startups.Startup)
	return s, args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) ReplaceRatings(ctx context.Context, startupID int64, raterUUID string, input []ratings.Rating) ([]ratings.Rating, error) {
	args := m.Called(ctx, startupID, raterUUID, input)
	rs, _ := args.Get(0).([]ratings.Rating)
	return rs, args.Error(1)
}

func (m *mockRatingRepository) ListByStartup(ctx context.Context, startupID int64) ([]ratings.Rating, error) {
	args := m.Called(ctx, startupID)
	rs, _ := args.Get(0).([]ratings.Rating)
	return rs, args.Error(1)
}

func (m *mockRatingRepository) ListByStartups(ctx context.Context, startupIDs []int64) (map[int64][]ratings.Rating, error) {
	args := m.Called(ctx, startupIDs)
	rs, _ := args.Get(0).(map[int64][]ratings.Rating)
	return rs, args.Error(1)
}

func (m *mockRatingRepository) DeleteByRater(ctx context.Context, startupID int64, raterUUID string) error {
	args := m.Called(ctx, startupID, raterUUID)
	return args.Error(0)
}

type mockGrantRepository struct {
	mock.Mock
}

func (m *mockGrantRepository) UpsertGrant(ctx context.Context, startupID int64, userUUID string, role access.Role) (access.Grant, error) {
	args := m.Called(ctx, startupID, userUUID, role)
	g, _ := args.Get(0).(access.Grant)
	return g, args.Error(1)
}

func (m *mockGrantRepository) DeleteGrant(ctx context.Context, startupID int64, userUUID string) error {
	args := m.Called(ctx, startupID, userUUID)
	return args.Error(0)
}

func (m *mockGrantRepository) ListGrantsByStartup(ctx context.Context, startupID int64) ([]access.Grant, error) {
	args := m.Called(ctx, startupID)
	gs, _ := args.Get(0).([]access.Grant)
	return gs, args.Error(1)
}

func (m *mockGrantRepository) ListGrantsByStartups(ctx context.Context, startupIDs []int64) (map[int64][]access.Grant, error) {
	args := m.Called(ctx, startupIDs)
	gs, _ := args.Get(0).(map[int64][]access.Grant)
	return gs, args.Error(1)
}

type mockEngagementRepository struct {
	mock.Mock
}

func (m *mockEngagementRepository) Toggle(ctx context.Context, startupID int64, userUUID, engType string) (bool, error) {
	args := m.Called(ctx, startupID, userUUID, engType)
	return args.Bool(0), args.Error(1)
}

func (m *mockEngagementRepository) ListByUser(ctx context.Context, userUUID string) ([]engage.Engagement, error) {
	args := m.Called(ctx, userUUID)
	es, _ := args.Get(0).([]engage.Engagement)
	return es, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, name, email, passwordHash, profilePicURL, uuid string) (users.User, error) {
	args := m.Called(ctx, name, email, passwordHash, profilePicURL, uuid)
	u, _ := args.Get(0).(users.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) UpdateUserByUUID(ctx context.Context, uuid string, u users.User) (users.User, error) {
	args := m.Called(ctx, uuid, u)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) DeleteUserByUUID(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByUUID(ctx context.Context, uuid string) (users.User, error) {
	args := m.Called(ctx, uuid)
	u, _ := args.Get(0).(users.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetUsersByUUIDs(ctx context.Context, uuids []string) (map[string]users.User, error) {
	args := m.Called(ctx, uuids)
	us, _ := args.Get(0).(map[string]users.User)
	return us, args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(users.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func newExploreFixture() (*mockStartupRepository, *mockRatingRepository, *mockGrantRepository, *mockEngagementRepository, *mockUserRepository, ExploreService) {
	startupRepo := new(mockStartupRepository)
	ratingRepo := new(mockRatingRepository)
	grantRepo := new(mockGrantRepository)
	engageRepo := new(mockEngagementRepository)
	userRepo := new(mockUserRepository)
	service := NewExploreService(startupRepo, ratingRepo, grantRepo, engageRepo, userRepo)
	return startupRepo, ratingRepo, grantRepo, engageRepo, userRepo, service
}

func TestExploreService_Explore_EnrichesAndFilters(t *testing.T) {
	startupRepo, ratingRepo, grantRepo, engageRepo, userRepo, service := newExploreFixture()

	base := []startups.Startup{
		{ID: 1, OwnerUUID: "owner-uuid", Name: "Rated", Visibility: "public", Status: "Active", CreatedAt: time.Unix(1, 0)},
		{ID: 2, OwnerUUID: "owner-uuid", Name: "Unrated", Visibility: "public", CreatedAt: time.Unix(2, 0)},
	}
	startupRepo.On("ListStartups", mock.Anything, mock.Anything).Return(base, nil)
	ratingRepo.On("ListByStartups", mock.Anything, []int64{1, 2}).Return(map[int64][]ratings.Rating{
		1: {
			{StartupID: 1, RaterUUID: "rater-a", Dimension: ratings.DimensionMarketDemand, Score: 4, Visibility: ratings.VisibilityPublic},
			{StartupID: 1, RaterUUID: "rater-b", Dimension: ratings.DimensionMarketDemand, Score: 2, Visibility: ratings.VisibilityPublic},
		},
	}, nil)
	grantRepo.On("ListGrantsByStartups", mock.Anything, []int64{1, 2}).Return(map[int64][]access.Grant{}, nil)
	userRepo.On("GetUsersByUUIDs", mock.Anything, []string{"owner-uuid"}).Return(map[string]users.User{
		"owner-uuid": {UUID: "owner-uuid", Name: "Ada"},
	}, nil)
	engageRepo.On("ListByUser", mock.Anything, "viewer-uuid").Return([]engage.Engagement{
		{StartupID: 1, UserUUID: "viewer-uuid", Type: engage.TypeSaved},
	}, nil)

	// The default rating floor excludes the unrated startup.
	list, err := service.Explore(context.Background(), "viewer-uuid", FilterQuery{MinRating: 1}, 1, 10)

	require.NoError(t, err)
	require.EqualValues(t, 1, list.Total)
	require.Len(t, list.Items, 1)

	item := list.Items[0]
	require.Equal(t, "Rated", item.Name)
	require.Equal(t, "Ada", item.CreatorName)
	require.Equal(t, 3.0, item.AvgRating)
	require.Equal(t, 2, item.DimensionRatings[ratings.DimensionMarketDemand].Count)
	require.True(t, item.Saved)
	require.False(t, item.Interested)
}

func TestExploreService_Explore_AnonymousViewer(t *testing.T) {
	startupRepo, ratingRepo, grantRepo, engageRepo, userRepo, service := newExploreFixture()

	base := []startups.Startup{
		{ID: 1, OwnerUUID: "owner-uuid", Name: "Public", Visibility: "public"},
	}
	startupRepo.On("ListStartups", mock.Anything, mock.Anything).Return(base, nil)
	ratingRepo.On("ListByStartups", mock.Anything, []int64{1}).Return(map[int64][]ratings.Rating{
		1: {{StartupID: 1, RaterUUID: "rater-a", Dimension: ratings.DimensionMarketDemand, Score: 4, Visibility: ratings.VisibilityPublic}},
	}, nil)
	grantRepo.On("ListGrantsByStartups", mock.Anything, []int64{1}).Return(map[int64][]access.Grant{}, nil)
	userRepo.On("GetUsersByUUIDs", mock.Anything, []string{"owner-uuid"}).Return(map[string]users.User{}, nil)

	list, err := service.Explore(context.Background(), "", FilterQuery{}, 1, 10)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	// Anonymous viewers get public fields but no rating data.
	require.Equal(t, 0.0, list.Items[0].AvgRating)
	require.Empty(t, list.Items[0].Ratings)
	require.Equal(t, "Unknown", list.Items[0].CreatorName)
	require.False(t, list.Items[0].Saved)

	engageRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestExploreService_Saved_OnlySavedType(t *testing.T) {
	startupRepo, ratingRepo, grantRepo, engageRepo, userRepo, service := newExploreFixture()

	engageRepo.On("ListByUser", mock.Anything, "viewer-uuid").Return([]engage.Engagement{
		{StartupID: 1, UserUUID: "viewer-uuid", Type: engage.TypeSaved},
		{StartupID: 2, UserUUID: "viewer-uuid", Type: engage.TypeInterest},
	}, nil)
	startupRepo.On("GetStartupsByIDs", mock.Anything, []int64{1}).Return([]startups.Startup{
		{ID: 1, OwnerUUID: "owner-uuid", Name: "Saved one", Visibility: "public"},
	}, nil)
	ratingRepo.On("ListByStartups", mock.Anything, []int64{1}).Return(map[int64][]ratings.Rating{}, nil)
	grantRepo.On("ListGrantsByStartups", mock.Anything, []int64{1}).Return(map[int64][]access.Grant{}, nil)
	userRepo.On("GetUsersByUUIDs", mock.Anything, []string{"owner-uuid"}).Return(map[string]users.User{}, nil)

	list, err := service.Saved(context.Background(), "viewer-uuid", FilterQuery{}, 1, 10)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, "Saved one", list.Items[0].Name)
	require.True(t, list.Items[0].Saved)
}

func TestExploreService_Dashboard_OwnerView(t *testing.T) {
	startupRepo, ratingRepo, grantRepo, engageRepo, userRepo, service := newExploreFixture()

	startupRepo.On("ListStartupsByOwner", mock.Anything, "owner-uuid").Return([]startups.Startup{
		{ID: 1, OwnerUUID: "owner-uuid", Name: "Mine", Visibility: "private"},
	}, nil)
	ratingRepo.On("ListByStartups", mock.Anything, []int64{1}).Return(map[int64][]ratings.Rating{
		1: {{StartupID: 1, RaterUUID: "rater-a", Dimension: ratings.DimensionMarketDemand, Score: 5, Visibility: ratings.VisibilityPrivate}},
	}, nil)
	grantRepo.On("ListGrantsByStartups", mock.Anything, []int64{1}).Return(map[int64][]access.Grant{}, nil)
	userRepo.On("GetUsersByUUIDs", mock.Anything, []string{"owner-uuid"}).Return(map[string]users.User{
		"owner-uuid": {UUID: "owner-uuid", Name: "Ada"},
	}, nil)
	engageRepo.On("ListByUser", mock.Anything, "owner-uuid").Return([]engage.Engagement{}, nil)

	list, err := service.Dashboard(context.Background(), "owner-uuid", FilterQuery{}, 1, 10)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	// Owners see every rating on their own startup, private ones included.
	require.Equal(t, "You", list.Items[0].CreatorName)
	require.Len(t, list.Items[0].Ratings, 1)
	require.Equal(t, 5.0, list.Items[0].AvgRating)
}

func TestExploreService_Pagination(t *testing.T) {
	startupRepo, ratingRepo, grantRepo, _, userRepo, service := newExploreFixture()

	base := make([]startups.Startup, 0, 25)
	ids := make([]int64, 0, 25)
	for i := int64(1); i <= 25; i++ {
		base = append(base, startups.Startup{ID: i, OwnerUUID: "owner-uuid", Name: "S", Visibility: "public", CreatedAt: time.Unix(i, 0)})
		ids = append(ids, i)
	}
	startupRepo.On("ListStartups", mock.Anything, mock.Anything).Return(base, nil)
	ratingRepo.On("ListByStartups", mock.Anything, ids).Return(map[int64][]ratings.Rating{}, nil)
	grantRepo.On("ListGrantsByStartups", mock.Anything, ids).Return(map[int64][]access.Grant{}, nil)
	userRepo.On("GetUsersByUUIDs", mock.Anything, []string{"owner-uuid"}).Return(map[string]users.User{}, nil)

	list, err := service.Explore(context.Background(), "", FilterQuery{}, 3, 10)

	require.NoError(t, err)
	require.EqualValues(t, 25, list.Total)
	require.Len(t, list.Items, 5)
	require.Equal(t, 3, list.Page)
}
