package ratings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRatingNotFound = errors.New("rating not found")

type RatingRepository interface {
	ReplaceRatings(ctx context.Context, startupID int64, raterUUID string, input []Rating) ([]Rating, error)
	ListByStartup(ctx context.Context, startupID int64) ([]Rating, error)
	ListByStartups(ctx context.Context, startupIDs []int64) (map[int64][]Rating, error)
	DeleteByRater(ctx context.Context, startupID int64, raterUUID string) error
}

type postgresRatingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &postgresRatingRepository{pool: pool}
}

// ReplaceRatings upserts a rater's scores in one transaction, keyed on
// (startup_id, rater_uuid, dimension). A resubmitted dimension overwrites
// the previous score in place; there is never a window where the old
// rating is gone and the new one not yet visible.
func (r *postgresRatingRepository) ReplaceRatings(ctx context.Context, startupID int64, raterUUID string, input []Rating) ([]Rating, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO ratings (startup_id, rater_uuid, dimension, score, comment, visibility, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW())
              ON CONFLICT (startup_id, rater_uuid, dimension) DO UPDATE
              SET score = EXCLUDED.score,
                  comment = EXCLUDED.comment,
                  visibility = EXCLUDED.visibility,
                  created_at = NOW()
              RETURNING id, startup_id, rater_uuid, dimension, score, comment, visibility, created_at`

	saved := make([]Rating, 0, len(input))
	for _, in := range input {
		row := tx.QueryRow(ctx, query, startupID, raterUUID, in.Dimension, in.Score, in.Comment, in.Visibility)

		var out Rating
		if err := row.Scan(&out.ID, &out.StartupID, &out.RaterUUID, &out.Dimension, &out.Score, &out.Comment, &out.Visibility, &out.CreatedAt); err != nil {
			return nil, err
		}
		saved = append(saved, out)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *postgresRatingRepository) ListByStartup(ctx context.Context, startupID int64) ([]Rating, error) {
	query := `SELECT id, startup_id, rater_uuid, dimension, score, comment, visibility, created_at
              FROM ratings
              WHERE startup_id = $1
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, startupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRatings(rows)
}

// ListByStartups loads every rating for a listing in one round trip,
// grouped by startup ID.
func (r *postgresRatingRepository) ListByStartups(ctx context.Context, startupIDs []int64) (map[int64][]Rating, error) {
	result := make(map[int64][]Rating)
	if len(startupIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, startup_id, rater_uuid, dimension, score, comment, visibility, created_at
              FROM ratings
              WHERE startup_id = ANY($1)
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, startupIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs, err := collectRatings(rows)
	if err != nil {
		return nil, err
	}
	for _, rt := range rs {
		result[rt.StartupID] = append(result[rt.StartupID], rt)
	}
	return result, nil
}

func (r *postgresRatingRepository) DeleteByRater(ctx context.Context, startupID int64, raterUUID string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM ratings WHERE startup_id = $1 AND rater_uuid = $2", startupID, raterUUID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func collectRatings(rows pgx.Rows) ([]Rating, error) {
	ratings := make([]Rating, 0)
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(&rt.ID, &rt.StartupID, &rt.RaterUUID, &rt.Dimension, &rt.Score, &rt.Comment, &rt.Visibility, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}
