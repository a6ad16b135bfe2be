package startups

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchrate/pkg/access"
)

// ErrStartupNotFound is shared with the access package so owner-policy
// callers can match it without an import cycle.
var ErrStartupNotFound = access.ErrStartupNotFound

type StartupRepository interface {
	CreateStartup(ctx context.Context, input Startup) (Startup, error)
	UpdateStartup(ctx context.Context, input Startup) (Startup, error)
	DeleteStartup(ctx context.Context, id int64) error
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	GetStartupsByIDs(ctx context.Context, ids []int64) ([]Startup, error)
	OwnerUUID(ctx context.Context, id int64) (string, error)
	ListStartups(ctx context.Context, filter ListFilter) ([]Startup, error)
	ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]Startup, error)
}

type postgresStartupRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStartupRepository(pool *pgxpool.Pool) StartupRepository {
	return &postgresStartupRepository{pool: pool}
}

const startupColumns = "id, owner_uuid, name, summary, description, tags, logo_url, visibility, status, asks, website_url, created_at"

func scanStartup(row pgx.Row) (Startup, error) {
	var s Startup
	err := row.Scan(&s.ID, &s.OwnerUUID, &s.Name, &s.Summary, &s.Description, &s.Tags,
		&s.LogoURL, &s.Visibility, &s.Status, &s.Asks, &s.WebsiteURL, &s.CreatedAt)
	return s, err
}

func (r *postgresStartupRepository) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	query := `INSERT INTO startups (owner_uuid, name, summary, description, tags, logo_url, visibility, status, asks, website_url, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
              RETURNING ` + startupColumns

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.pool.QueryRow(ctx, query, input.OwnerUUID, input.Name, input.Summary, input.Description,
		tags, input.LogoURL, input.Visibility, input.Status, input.Asks, input.WebsiteURL)
	return scanStartup(row)
}

func (r *postgresStartupRepository) UpdateStartup(ctx context.Context, input Startup) (Startup, error) {
	query := `UPDATE startups
              SET name = $1, summary = $2, description = $3, tags = $4, logo_url = $5,
                  visibility = $6, status = $7, asks = $8, website_url = $9
              WHERE id = $10 AND is_deleted = false
              RETURNING ` + startupColumns

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.pool.QueryRow(ctx, query, input.Name, input.Summary, input.Description, tags,
		input.LogoURL, input.Visibility, input.Status, input.Asks, input.WebsiteURL, input.ID)

	updated, err := scanStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}
	return updated, nil
}

func (r *postgresStartupRepository) DeleteStartup(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE startups SET is_deleted = true WHERE id = $1 AND is_deleted = false", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStartupNotFound
	}
	return nil
}

func (r *postgresStartupRepository) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE id = $1 AND is_deleted = false`

	s, err := scanStartup(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}
	return s, nil
}

// OwnerUUID resolves just the owner column; the access package relies on
// this for its ownership policy.
func (r *postgresStartupRepository) OwnerUUID(ctx context.Context, id int64) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx, "SELECT owner_uuid FROM startups WHERE id = $1 AND is_deleted = false", id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrStartupNotFound
		}
		return "", err
	}
	return owner, nil
}

func (r *postgresStartupRepository) GetStartupsByIDs(ctx context.Context, ids []int64) ([]Startup, error) {
	if len(ids) == 0 {
		return []Startup{}, nil
	}

	query := `SELECT ` + startupColumns + ` FROM startups WHERE id = ANY($1) AND is_deleted = false ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStartups(rows)
}

// ListStartups pushes the coarse facets down to Postgres. The query is
// assembled dynamically since every facet is optional.
func (r *postgresStartupRepository) ListStartups(ctx context.Context, filter ListFilter) ([]Startup, error) {
	builder := sq.Select(startupColumns).
		From("startups").
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"summary": like},
			sq.ILike{"description": like},
		})
	}
	if len(filter.Visibility) > 0 {
		builder = builder.Where(sq.Eq{"visibility": filter.Visibility})
	}
	if len(filter.Status) > 0 {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if len(filter.Tags) > 0 {
		builder = builder.Where(sq.Expr("tags && ?", filter.Tags))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStartups(rows)
}

func (r *postgresStartupRepository) ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE owner_uuid = $1 AND is_deleted = false ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ownerUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStartups(rows)
}

func collectStartups(rows pgx.Rows) ([]Startup, error) {
	startups := make([]Startup, 0)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		startups = append(startups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return startups, nil
}
