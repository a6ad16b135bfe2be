package invites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"launchrate/pkg/access"
	"launchrate/pkg/sendemail"
	"launchrate/pkg/users"
)

var (
	ErrInviteExpired    = errors.New("invite has expired")
	ErrTooManyInvites   = errors.New("too many invites for this startup. Please try again later")
	ErrInviteWrongEmail = errors.New("invite was issued for a different email")
)

const inviteTTL = 7 * 24 * time.Hour

type InviteService interface {
	IssueInvite(ctx context.Context, actorUUID string, startupID int64, email string, role access.Role) (Invite, error)
	RedeemInvite(ctx context.Context, redeemerUUID, code string) (access.Grant, error)
}

type inviteService struct {
	repo      InviteRepository
	owners    access.OwnerResolver
	grantRepo access.GrantRepository
	userRepo  users.UserRepository
	es        sendemail.EmailService
}

func NewInviteService(repo InviteRepository, owners access.OwnerResolver, grantRepo access.GrantRepository, userRepo users.UserRepository, es sendemail.EmailService) InviteService {
	return &inviteService{repo: repo, owners: owners, grantRepo: grantRepo, userRepo: userRepo, es: es}
}

func (s *inviteService) IssueInvite(ctx context.Context, actorUUID string, startupID int64, email string, role access.Role) (Invite, error) {
	if !access.IsGrantableRole(role) {
		return Invite{}, access.ErrInvalidRole
	}

	ownerUUID, err := s.owners.OwnerUUID(ctx, startupID)
	if err != nil {
		return Invite{}, err
	}
	if err := access.RequireOwner(ownerUUID, actorUUID); err != nil {
		return Invite{}, err
	}

	count, err := s.repo.CountPendingInLastHour(ctx, startupID)
	if err != nil {
		return Invite{}, fmt.Errorf("failed to check invite count: %w", err)
	}
	if count >= 5 {
		return Invite{}, ErrTooManyInvites
	}

	code := uuid.New().String()
	expiresAt := time.Now().Add(inviteTTL)

	inv, err := s.repo.CreateInvite(ctx, startupID, email, string(role), code, expiresAt)
	if err != nil {
		return Invite{}, fmt.Errorf("failed to create invite: %w", err)
	}

	if err := s.sendInviteEmail(email, code, role); err != nil {
		return Invite{}, fmt.Errorf("failed to send invite email: %w", err)
	}

	_ = s.repo.DeleteExpiredInvites(ctx)

	return inv, nil
}

func (s *inviteService) RedeemInvite(ctx context.Context, redeemerUUID, code string) (access.Grant, error) {
	inv, err := s.repo.GetInviteByCode(ctx, code)
	if err != nil {
		return access.Grant{}, err
	}

	if time.Now().After(inv.ExpiresAt) {
		return access.Grant{}, ErrInviteExpired
	}

	redeemer, err := s.userRepo.GetUserByUUID(ctx, redeemerUUID)
	if err != nil {
		return access.Grant{}, err
	}
	if redeemer.Email != inv.Email {
		return access.Grant{}, ErrInviteWrongEmail
	}

	if err := s.repo.MarkInviteUsed(ctx, inv.ID); err != nil {
		return access.Grant{}, err
	}

	g, err := s.grantRepo.UpsertGrant(ctx, inv.StartupID, redeemerUUID, access.Role(inv.Role))
	if err != nil {
		return access.Grant{}, fmt.Errorf("failed to create grant: %w", err)
	}
	return g, nil
}

func (s *inviteService) sendInviteEmail(toEmail, code string, role access.Role) error {
	subject := "You're invited to a startup on launchrate"
	plainTextContent := fmt.Sprintf("You've been invited as a %s. Your invite code is: %s. It expires in 7 days.", role, code)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>You're invited</h2>
			<p>You've been invited as a <strong>%s</strong>. Your invite code is:</p>
			<div style="font-size: 20px; font-weight: bold; color: #333; padding: 10px; background-color: #f5f5f5; border-radius: 5px; display: inline-block;">
				%s
			</div>
			<p>This code expires in 7 days.</p>
			<p>If you weren't expecting this invite, you can ignore this email.</p>
		</div>
	`, role, code)

	return s.es.SendEmail(subject, toEmail, plainTextContent, htmlContent)
}
