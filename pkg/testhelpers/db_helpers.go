package testhelpers

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// SetupTestPool connects to the test database, skipping the test when
// DATABASE_URL_FOR_TEST is not set.
func SetupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping repository tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

// CleanDatabase truncates every table touched by the tests.
func CleanDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, "TRUNCATE TABLE invites, engagements, access_grants, ratings, startups, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// CreateTestUser inserts a minimal valid user row and returns its UUID.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-user-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)
	userUUID := fmt.Sprintf("test-uuid-%d", suffix)

	_, err := pool.Exec(ctx,
		"INSERT INTO users (name, email, password_hash, uuid) VALUES ($1, $2, 'hash', $3)",
		name, email, userUUID)
	require.NoError(t, err)
	return userUUID
}

// CreateTestStartup inserts a public startup for the given owner and
// returns its ID.
func CreateTestStartup(t *testing.T, pool *pgxpool.Pool, ownerUUID string) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-startup-%d", suffix)

	var id int64
	err := pool.QueryRow(ctx,
		"INSERT INTO startups (name, owner_uuid, visibility, status) VALUES ($1, $2, 'public', 'Active') RETURNING id",
		name, ownerUUID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestRating inserts one rating row and returns its ID.
func CreateTestRating(t *testing.T, pool *pgxpool.Pool, startupID int64, raterUUID, dimension string, score int) int64 {
	t.Helper()

	ctx := context.Background()
	var id int64
	err := pool.QueryRow(ctx,
		"INSERT INTO ratings (startup_id, rater_uuid, dimension, score, visibility) VALUES ($1, $2, $3, $4, 'public') RETURNING id",
		startupID, raterUUID, dimension, score).Scan(&id)
	require.NoError(t, err)
	return id
}
