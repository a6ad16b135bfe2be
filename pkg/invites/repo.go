package invites

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInviteNotFound = errors.New("invite not found")

type InviteRepository interface {
	CreateInvite(ctx context.Context, startupID int64, email, role, code string, expiresAt time.Time) (Invite, error)
	GetInviteByCode(ctx context.Context, code string) (Invite, error)
	MarkInviteUsed(ctx context.Context, id int64) error
	CountPendingInLastHour(ctx context.Context, startupID int64) (int, error)
	DeleteExpiredInvites(ctx context.Context) error
}

type postgresInviteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &postgresInviteRepository{pool: pool}
}

func (r *postgresInviteRepository) CreateInvite(ctx context.Context, startupID int64, email, role, code string, expiresAt time.Time) (Invite, error) {
	query := `INSERT INTO invites (startup_id, email, role, code, expires_at, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW())
              RETURNING id, startup_id, email, role, code, used, expires_at, created_at`
	row := r.pool.QueryRow(ctx, query, startupID, email, role, code, expiresAt)

	var inv Invite
	if err := row.Scan(&inv.ID, &inv.StartupID, &inv.Email, &inv.Role, &inv.Code, &inv.Used, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		return Invite{}, err
	}
	return inv, nil
}

func (r *postgresInviteRepository) GetInviteByCode(ctx context.Context, code string) (Invite, error) {
	query := `SELECT id, startup_id, email, role, code, used, expires_at, created_at
              FROM invites
              WHERE code = $1 AND used = false`
	row := r.pool.QueryRow(ctx, query, code)

	var inv Invite
	if err := row.Scan(&inv.ID, &inv.StartupID, &inv.Email, &inv.Role, &inv.Code, &inv.Used, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invite{}, ErrInviteNotFound
		}
		return Invite{}, err
	}
	return inv, nil
}

func (r *postgresInviteRepository) MarkInviteUsed(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE invites SET used = true WHERE id = $1 AND used = false", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInviteNotFound
	}
	return nil
}

func (r *postgresInviteRepository) CountPendingInLastHour(ctx context.Context, startupID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM invites WHERE startup_id = $1 AND created_at > NOW() - INTERVAL '1 hour'",
		startupID).Scan(&count)
	return count, err
}

func (r *postgresInviteRepository) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM invites WHERE expires_at < NOW() AND used = false")
	return err
}
