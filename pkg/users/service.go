package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"launchrate/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 7 * 24 * time.Hour

type UserService interface {
	Register(ctx context.Context, name, email, password, profilePicURL string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	UpdateUser(ctx context.Context, actorUUID, targetUUID string, u User) (User, error)
	DeleteUser(ctx context.Context, actorUUID, targetUUID string) error
}

type userService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, name, email, password, profilePicURL string) (AuthResult, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	u, err := s.repo.CreateUser(ctx, name, email, string(hashBytes), profilePicURL, uuid.New().String())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResult{}, errors.New("user exists with that email")
		}
		return AuthResult{}, err
	}

	token, err := auth.SignToken(u.UUID, u.Email, tokenTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	userUUID, hash, err := s.repo.GetUserAuthByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := auth.SignToken(u.UUID, u.Email, tokenTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

func (s *userService) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	return s.repo.GetUserByUUID(ctx, uuid)
}

func (s *userService) UpdateUser(ctx context.Context, actorUUID, targetUUID string, u User) (User, error) {
	if actorUUID != targetUUID {
		return User{}, errors.New("cannot update another user's profile")
	}
	return s.repo.UpdateUserByUUID(ctx, targetUUID, u)
}

func (s *userService) DeleteUser(ctx context.Context, actorUUID, targetUUID string) error {
	if actorUUID != targetUUID {
		return errors.New("cannot delete another user's profile")
	}
	return s.repo.DeleteUserByUUID(ctx, targetUUID)
}
