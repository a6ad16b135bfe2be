package engage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"launchrate/pkg/testhelpers"
)

func TestPostgresEngagementRepository_ToggleRoundTrip(t *testing.T) {
	pool := testhelpers.SetupTestPool(t)
	testhelpers.CleanDatabase(t, pool)

	owner := testhelpers.CreateTestUser(t, pool)
	user := testhelpers.CreateTestUser(t, pool)
	startupID := testhelpers.CreateTestStartup(t, pool, owner)

	repo := NewPostgresEngagementRepository(pool)
	ctx := context.Background()

	on, err := repo.Toggle(ctx, startupID, user, TypeSaved)
	require.NoError(t, err)
	require.True(t, on)

	off, err := repo.Toggle(ctx, startupID, user, TypeSaved)
	require.NoError(t, err)
	require.False(t, off)

	// An even number of toggles leaves no row behind.
	es, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Empty(t, es)
}

func TestPostgresEngagementRepository_TypesAreIndependent(t *testing.T) {
	pool := testhelpers.SetupTestPool(t)
	testhelpers.CleanDatabase(t, pool)

	owner := testhelpers.CreateTestUser(t, pool)
	user := testhelpers.CreateTestUser(t, pool)
	startupID := testhelpers.CreateTestStartup(t, pool, owner)

	repo := NewPostgresEngagementRepository(pool)
	ctx := context.Background()

	_, err := repo.Toggle(ctx, startupID, user, TypeSaved)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, startupID, user, TypeInterest)
	require.NoError(t, err)

	off, err := repo.Toggle(ctx, startupID, user, TypeSaved)
	require.NoError(t, err)
	require.False(t, off)

	es, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, es, 1)
	require.Equal(t, TypeInterest, es[0].Type)
}
