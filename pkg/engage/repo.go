package engage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EngagementRepository interface {
	Toggle(ctx context.Context, startupID int64, userUUID, engType string) (bool, error)
	ListByUser(ctx context.Context, userUUID string) ([]Engagement, error)
}

type postgresEngagementRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEngagementRepository(pool *pgxpool.Pool) EngagementRepository {
	return &postgresEngagementRepository{pool: pool}
}

// Toggle flips the flag: delete the row if present, insert it if absent.
// Returns the resulting state (true = on).
func (r *postgresEngagementRepository) Toggle(ctx context.Context, startupID int64, userUUID, engType string) (bool, error) {
	cmd, err := r.pool.Exec(ctx,
		"DELETE FROM engagements WHERE startup_id = $1 AND user_uuid = $2 AND type = $3",
		startupID, userUUID, engType)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		"INSERT INTO engagements (startup_id, user_uuid, type, created_at) VALUES ($1, $2, $3, NOW()) ON CONFLICT DO NOTHING",
		startupID, userUUID, engType)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *postgresEngagementRepository) ListByUser(ctx context.Context, userUUID string) ([]Engagement, error) {
	query := `SELECT id, startup_id, user_uuid, type, created_at
              FROM engagements
              WHERE user_uuid = $1
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEngagements(rows)
}

func collectEngagements(rows pgx.Rows) ([]Engagement, error) {
	engagements := make([]Engagement, 0)
	for rows.Next() {
		var e Engagement
		if err := rows.Scan(&e.ID, &e.StartupID, &e.UserUUID, &e.Type, &e.CreatedAt); err != nil {
			return nil, err
		}
		engagements = append(engagements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return engagements, nil
}
