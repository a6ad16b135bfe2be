package access

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGrantNotFound = errors.New("access grant not found")

type GrantRepository interface {
	UpsertGrant(ctx context.Context, startupID int64, userUUID string, role Role) (Grant, error)
	DeleteGrant(ctx context.Context, startupID int64, userUUID string) error
	ListGrantsByStartup(ctx context.Context, startupID int64) ([]Grant, error)
	ListGrantsByStartups(ctx context.Context, startupIDs []int64) (map[int64][]Grant, error)
}

type postgresGrantRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresGrantRepository(pool *pgxpool.Pool) GrantRepository {
	return &postgresGrantRepository{pool: pool}
}

func (r *postgresGrantRepository) UpsertGrant(ctx context.Context, startupID int64, userUUID string, role Role) (Grant, error) {
	query := `INSERT INTO access_grants (startup_id, user_uuid, role, created_at)
              VALUES ($1, $2, $3, NOW())
              ON CONFLICT (startup_id, user_uuid) DO UPDATE SET role = EXCLUDED.role
              RETURNING id, startup_id, user_uuid, role, created_at`
	row := r.pool.QueryRow(ctx, query, startupID, userUUID, role)

	var g Grant
	if err := row.Scan(&g.ID, &g.StartupID, &g.UserUUID, &g.Role, &g.CreatedAt); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (r *postgresGrantRepository) DeleteGrant(ctx context.Context, startupID int64, userUUID string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM access_grants WHERE startup_id = $1 AND user_uuid = $2", startupID, userUUID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrGrantNotFound
	}
	return nil
}

func (r *postgresGrantRepository) ListGrantsByStartup(ctx context.Context, startupID int64) ([]Grant, error) {
	query := `SELECT id, startup_id, user_uuid, role, created_at
              FROM access_grants
              WHERE startup_id = $1
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, startupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGrants(rows)
}

// ListGrantsByStartups loads grants for a whole listing in one round trip,
// grouped by startup ID.
func (r *postgresGrantRepository) ListGrantsByStartups(ctx context.Context, startupIDs []int64) (map[int64][]Grant, error) {
	result := make(map[int64][]Grant)
	if len(startupIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, startup_id, user_uuid, role, created_at
              FROM access_grants
              WHERE startup_id = ANY($1)
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, startupIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants, err := collectGrants(rows)
	if err != nil {
		return nil, err
	}
	for _, g := range grants {
		result[g.StartupID] = append(result[g.StartupID], g)
	}
	return result, nil
}

func collectGrants(rows pgx.Rows) ([]Grant, error) {
	grants := make([]Grant, 0)
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.ID, &g.StartupID, &g.UserUUID, &g.Role, &g.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}
