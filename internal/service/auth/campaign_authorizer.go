package auth

import (
	"context"
	"fmt"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
)

// MemberBasedAuthorizer implements CampaignAuthorizer from the campaign row
// alone: the owner id and the member roster.
//
// Visibility mirrors the row-level rules of the hosted database. A campaign is
// visible to its owner and to anyone on its member list, matched by email.
type MemberBasedAuthorizer struct {
	campaignRepo repositories.CampaignRepository
}

// NewMemberBasedAuthorizer creates a roster-based authorizer
func NewMemberBasedAuthorizer(campaignRepo repositories.CampaignRepository) *MemberBasedAuthorizer {
	return &MemberBasedAuthorizer{campaignRepo: campaignRepo}
}

var _ services.CampaignAuthorizer = (*MemberBasedAuthorizer)(nil)

// CanView checks the actor owns or belongs to the campaign
func (a *MemberBasedAuthorizer) CanView(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error) {
	campaign, err := a.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := RequireVisible(campaign, actor); err != nil {
		return nil, err
	}
	return campaign, nil
}

// CanEditContent checks the actor owns the campaign or is an active game master
func (a *MemberBasedAuthorizer) CanEditContent(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error) {
	campaign, err := a.CanView(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.IsOwner(actor.UserID) {
		return campaign, nil
	}

	member, _ := campaign.MemberFor(actor.Email)
	if member.Role != models.RoleGameMaster || member.Status != models.StatusActive {
		return nil, fmt.Errorf("edit content of campaign %s: %w", campaignID, domain.ErrForbidden)
	}
	return campaign, nil
}

// CanManage checks the actor owns the campaign
func (a *MemberBasedAuthorizer) CanManage(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error) {
	campaign, err := a.CanView(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(campaign, actor); err != nil {
		return nil, err
	}
	return campaign, nil
}

// RequireVisible hides campaigns the actor has no part in behind ErrNotFound.
func RequireVisible(campaign *models.Campaign, actor models.Actor) error {
	if campaign.IsOwner(actor.UserID) {
		return nil
	}
	if actor.Email != "" && campaign.FindMember(actor.Email) >= 0 {
		return nil
	}
	return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrNotFound)
}

// RequireOwner is for callers that already hold the campaign, such as roster
// changes made under a row lock.
func RequireOwner(campaign *models.Campaign, actor models.Actor) error {
	if err := RequireVisible(campaign, actor); err != nil {
		return err
	}
	if !campaign.IsOwner(actor.UserID) {
		return fmt.Errorf("manage campaign %s: %w", campaign.ID, domain.ErrForbidden)
	}
	return nil
}
