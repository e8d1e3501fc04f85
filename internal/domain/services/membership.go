package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// AddMemberRequest invites an email address to a campaign.
type AddMemberRequest struct {
	Email string            `json:"email"`
	Role  models.MemberRole `json:"role"`
}

// InvitationOutcome is the delivery result for one invited email.
type InvitationOutcome struct {
	Email string `json:"email"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// MemberResult is returned after adding a member. The member stays on the
// campaign as invited even when the invitation could not be delivered.
type MemberResult struct {
	Campaign   *models.Campaign  `json:"campaign"`
	Invitation InvitationOutcome `json:"invitation"`
}

// AcceptInvitationResult reports the invited to active transition.
type AcceptInvitationResult struct {
	CampaignID string               `json:"campaign_id,omitempty"`
	Activated  bool                 `json:"activated"`
	Status     *models.MemberStatus `json:"status,omitempty"`
}

// MembershipService manages a campaign's member roster. Every roster change is
// a locked read-modify-write of the whole list.
type MembershipService interface {
	AddMember(ctx context.Context, actor models.Actor, campaignID string, req *AddMemberRequest) (*MemberResult, error)
	// AddExistingUser adds a directory user with the player role.
	AddExistingUser(ctx context.Context, actor models.Actor, campaignID, email string) (*MemberResult, error)
	RemoveMember(ctx context.Context, actor models.Actor, campaignID, email string) (*models.Campaign, error)
	UpdateMemberRole(ctx context.Context, actor models.Actor, campaignID, email string, role models.MemberRole) (*models.Campaign, error)
	// ResendInvitation sends the invitation again without touching the roster.
	ResendInvitation(ctx context.Context, actor models.Actor, campaignID, email string) (*InvitationOutcome, error)
	// AcceptInvitation activates the member matching the claims' email on the
	// campaign named in the claims' invitation metadata.
	AcceptInvitation(ctx context.Context, claims *models.SupabaseClaims) (*AcceptInvitationResult, error)
}
