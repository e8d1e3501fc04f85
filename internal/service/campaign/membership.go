package campaign

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/metrics"
	authz "rpgmanager/internal/service/auth"
)

// membershipService implements the MembershipService interface.
// Roster writes lock the campaign row so concurrent changes serialize.
type membershipService struct {
	campaignRepo repositories.CampaignRepository
	txManager    repositories.TransactionManager
	inviter      inviter
	logger       *slog.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	campaignRepo repositories.CampaignRepository,
	txManager repositories.TransactionManager,
	sender services.InvitationSender,
	logger *slog.Logger,
) services.MembershipService {
	return &membershipService{
		campaignRepo: campaignRepo,
		txManager:    txManager,
		inviter:      inviter{sender: sender, logger: logger},
		logger:       logger,
	}
}

// rosterFn edits a locked campaign's member list in place.
type rosterFn func(c *models.Campaign) error

// updateRoster loads the campaign under a row lock, checks the actor owns it,
// applies fn and writes the whole member list back.
func (s *membershipService) updateRoster(ctx context.Context, actor models.Actor, campaignID string, fn rosterFn) (*models.Campaign, error) {
	var campaign *models.Campaign
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaignRepo.GetForUpdate(txCtx, campaignID)
		if err != nil {
			return err
		}
		if err := authz.RequireOwner(c, actor); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := s.campaignRepo.UpdateMembers(txCtx, c.ID, c.Members); err != nil {
			return err
		}
		campaign = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// AddMember adds an invited member and sends the invitation once the roster
// is saved. A failed delivery leaves the member in place.
func (s *membershipService) AddMember(ctx context.Context, actor models.Actor, campaignID string, req *services.AddMemberRequest) (*services.MemberResult, error) {
	email := models.NormalizeEmail(req.Email)
	role := req.Role
	if role == "" {
		role = models.RolePlayer
	}

	err := validation.Errors{
		"email": validation.Validate(email, emailRules...),
		"role":  validation.Validate(role, validRole),
	}.Filter()
	if err != nil {
		return nil, invalid(err)
	}

	campaign, err := s.updateRoster(ctx, actor, campaignID, func(c *models.Campaign) error {
		if email == actor.NormalizedEmail() {
			return invalidf("you own this campaign and cannot add yourself as a member")
		}
		if c.FindMember(email) >= 0 {
			return domain.NewConflictError("member", email, "%s is already a member of this campaign", email)
		}
		c.Members = append(c.Members, models.Member{
			Email:  email,
			Role:   role,
			Status: models.StatusInvited,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member added",
		"campaign_id", campaign.ID,
		"email", email,
		"role", role,
	)

	return &services.MemberResult{
		Campaign:   campaign,
		Invitation: s.inviter.invite(ctx, campaign, actor.Email, email),
	}, nil
}

// AddExistingUser adds a directory user as a player
func (s *membershipService) AddExistingUser(ctx context.Context, actor models.Actor, campaignID, email string) (*services.MemberResult, error) {
	return s.AddMember(ctx, actor, campaignID, &services.AddMemberRequest{
		Email: email,
		Role:  models.RolePlayer,
	})
}

// RemoveMember drops a member from the roster
func (s *membershipService) RemoveMember(ctx context.Context, actor models.Actor, campaignID, email string) (*models.Campaign, error) {
	campaign, err := s.updateRoster(ctx, actor, campaignID, func(c *models.Campaign) error {
		i := c.FindMember(email)
		if i < 0 {
			return memberNotFound(c.ID, email)
		}
		c.Members = append(c.Members[:i:i], c.Members[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member removed",
		"campaign_id", campaign.ID,
		"email", models.NormalizeEmail(email),
	)

	return campaign, nil
}

// UpdateMemberRole changes a member's role; status is kept
func (s *membershipService) UpdateMemberRole(ctx context.Context, actor models.Actor, campaignID, email string, role models.MemberRole) (*models.Campaign, error) {
	if err := validation.Validate(role, validation.Required, validRole); err != nil {
		return nil, invalidf("role: %v", err)
	}

	campaign, err := s.updateRoster(ctx, actor, campaignID, func(c *models.Campaign) error {
		i := c.FindMember(email)
		if i < 0 {
			return memberNotFound(c.ID, email)
		}
		c.Members[i].Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member role updated",
		"campaign_id", campaign.ID,
		"email", models.NormalizeEmail(email),
		"role", role,
	)

	return campaign, nil
}

// ResendInvitation sends the invitation again. The roster is not touched.
func (s *membershipService) ResendInvitation(ctx context.Context, actor models.Actor, campaignID, email string) (*services.InvitationOutcome, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(campaign, actor); err != nil {
		return nil, err
	}

	member, ok := campaign.MemberFor(email)
	if !ok {
		return nil, memberNotFound(campaign.ID, email)
	}

	outcome := s.inviter.invite(ctx, campaign, actor.Email, member.Email)
	return &outcome, nil
}

// AcceptInvitation flips the caller's membership from invited to active when
// their identity carries a campaign invitation marker. Callers without a
// marker, or no longer on the roster, get Activated=false and no error.
func (s *membershipService) AcceptInvitation(ctx context.Context, claims *models.SupabaseClaims) (*services.AcceptInvitationResult, error) {
	campaignID, ok := claims.PendingInvitation()
	if !ok {
		return &services.AcceptInvitationResult{}, nil
	}

	result := &services.AcceptInvitationResult{CampaignID: campaignID}
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaignRepo.GetForUpdate(txCtx, campaignID)
		if err != nil {
			return err
		}

		i := c.FindMember(claims.Email)
		if i < 0 {
			return nil
		}

		status := c.Members[i].Status
		result.Status = &status
		if status == models.StatusActive {
			return nil
		}

		c.Members[i].Status = models.StatusActive
		if err := s.campaignRepo.UpdateMembers(txCtx, c.ID, c.Members); err != nil {
			return err
		}
		active := models.StatusActive
		result.Status = &active
		result.Activated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Activated {
		metrics.MemberActivationsTotal.Inc()
		s.logger.Info("invitation accepted",
			"campaign_id", campaignID,
			"user_id", claims.GetUserID(),
		)
	}

	return result, nil
}

func memberNotFound(campaignID, email string) error {
	return fmt.Errorf("member %s of campaign %s: %w", models.NormalizeEmail(email), campaignID, domain.ErrNotFound)
}
