package access

import (
	"context"
	"errors"
	"fmt"
	"log"

	"launchrate/pkg/sendemail"
	"launchrate/pkg/users"
)

var ErrInvalidRole = errors.New("invalid grant role")

// OwnerResolver supplies the current owner of a startup. Satisfied by the
// startups repository without an import cycle.
type OwnerResolver interface {
	OwnerUUID(ctx context.Context, startupID int64) (string, error)
}

type GrantService interface {
	Grant(ctx context.Context, actorUUID string, startupID int64, userUUID string, role Role) (Grant, error)
	UpdateRole(ctx context.Context, actorUUID string, startupID int64, userUUID string, role Role) (Grant, error)
	Revoke(ctx context.Context, actorUUID string, startupID int64, userUUID string) error
	ListGrants(ctx context.Context, actorUUID string, startupID int64) ([]Grant, error)
}

type grantService struct {
	repo     GrantRepository
	owners   OwnerResolver
	userRepo users.UserRepository
	es       sendemail.EmailService
}

func NewGrantService(repo GrantRepository, owners OwnerResolver, userRepo users.UserRepository, es sendemail.EmailService) GrantService {
	return &grantService{repo: repo, owners: owners, userRepo: userRepo, es: es}
}

// authorize runs the shared owner policy for every mutating entry point.
func (s *grantService) authorize(ctx context.Context, actorUUID string, startupID int64) error {
	ownerUUID, err := s.owners.OwnerUUID(ctx, startupID)
	if err != nil {
		return err
	}
	return RequireOwner(ownerUUID, actorUUID)
}

func (s *grantService) Grant(ctx context.Context, actorUUID string, startupID int64, userUUID string, role Role) (Grant, error) {
	if !IsGrantableRole(role) {
		return Grant{}, ErrInvalidRole
	}
	if err := s.authorize(ctx, actorUUID, startupID); err != nil {
		return Grant{}, err
	}
	if userUUID == actorUUID {
		return Grant{}, errors.New("owner already holds full access")
	}

	grantee, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return Grant{}, fmt.Errorf("resolve grantee: %w", err)
	}

	g, err := s.repo.UpsertGrant(ctx, startupID, userUUID, role)
	if err != nil {
		return Grant{}, err
	}

	// Notification failures must not roll back the grant.
	if err := s.sendGrantEmail(grantee.Email, role); err != nil {
		log.Printf("grant notification email failed: %v", err)
	}

	return g, nil
}

func (s *grantService) UpdateRole(ctx context.Context, actorUUID string, startupID int64, userUUID string, role Role) (Grant, error) {
	if !IsGrantableRole(role) {
		return Grant{}, ErrInvalidRole
	}
	if err := s.authorize(ctx, actorUUID, startupID); err != nil {
		return Grant{}, err
	}
	return s.repo.UpsertGrant(ctx, startupID, userUUID, role)
}

func (s *grantService) Revoke(ctx context.Context, actorUUID string, startupID int64, userUUID string) error {
	if err := s.authorize(ctx, actorUUID, startupID); err != nil {
		return err
	}
	return s.repo.DeleteGrant(ctx, startupID, userUUID)
}

func (s *grantService) ListGrants(ctx context.Context, actorUUID string, startupID int64) ([]Grant, error) {
	if err := s.authorize(ctx, actorUUID, startupID); err != nil {
		return nil, err
	}
	return s.repo.ListGrantsByStartup(ctx, startupID)
}

func (s *grantService) sendGrantEmail(toEmail string, role Role) error {
	subject := "You've been given access to a startup"
	plainTextContent := fmt.Sprintf("You were granted %s access to a startup on launchrate. Log in to see its ratings and comments.", role)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>Access granted</h2>
			<p>You were granted <strong>%s</strong> access to a startup on launchrate.</p>
			<p>Log in to see its ratings and comments.</p>
		</div>
	`, role)
	return s.es.SendEmail(subject, toEmail, plainTextContent, htmlContent)
}
