package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash, profilePicURL, uuid string) (User, error)
	UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error)
	DeleteUserByUUID(ctx context.Context, uuid string) error
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	GetUsersByUUIDs(ctx context.Context, uuids []string) (map[string]User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserAuthByEmail(ctx context.Context, email string) (string, string, error)
}

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, name, email, passwordHash, profilePicURL, uuid string) (User, error) {
	query := `INSERT INTO users (name, email, password_hash, profile_pic_url, uuid, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW())
              RETURNING id, name, email, profile_pic_url, uuid, created_at`
	row := r.pool.QueryRow(ctx, query, name, email, passwordHash, profilePicURL, uuid)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicURL, &u.UUID, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *postgresUserRepository) UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error) {
	query := `UPDATE users
              SET name = $1, profile_pic_url = $2
              WHERE uuid = $3 AND is_deleted = false
              RETURNING id, name, email, profile_pic_url, uuid, created_at`
	row := r.pool.QueryRow(ctx, query, u.Name, u.ProfilePicURL, uuid)

	var out User
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.ProfilePicURL, &out.UUID, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return out, nil
}

func (r *postgresUserRepository) DeleteUserByUUID(ctx context.Context, uuid string) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE users SET email = NULL, is_deleted = true WHERE uuid = $1 AND is_deleted = false", uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	query := `SELECT id, name, email, profile_pic_url, uuid, created_at
              FROM users
              WHERE uuid = $1 AND is_deleted = false`
	row := r.pool.QueryRow(ctx, query, uuid)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicURL, &u.UUID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// GetUsersByUUIDs loads display profiles in one round trip, keyed by UUID.
// UUIDs with no matching row are simply absent from the result.
func (r *postgresUserRepository) GetUsersByUUIDs(ctx context.Context, uuids []string) (map[string]User, error) {
	result := make(map[string]User)
	if len(uuids) == 0 {
		return result, nil
	}

	query := `SELECT id, name, email, profile_pic_url, uuid, created_at
              FROM users
              WHERE uuid = ANY($1) AND is_deleted = false`
	rows, err := r.pool.Query(ctx, query, uuids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicURL, &u.UUID, &u.CreatedAt); err != nil {
			return nil, err
		}
		result[u.UUID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, name, email, profile_pic_url, uuid, created_at
              FROM users
              WHERE email = $1 AND is_deleted = false`
	row := r.pool.QueryRow(ctx, query, email)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicURL, &u.UUID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// GetUserAuthByEmail returns (uuid, password_hash) for login checks.
func (r *postgresUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	row := r.pool.QueryRow(ctx, "SELECT uuid, password_hash FROM users WHERE email = $1 AND is_deleted = false", email)

	var uuid, hash string
	if err := row.Scan(&uuid, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	return uuid, hash, nil
}
