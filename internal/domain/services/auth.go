package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// CampaignAuthorizer decides what an actor may do with a campaign and its
// children. Each check returns the campaign so callers avoid a second read.
//
// A campaign nobody could see is reported as not found. A visible campaign
// the actor may not change is reported as forbidden.
type CampaignAuthorizer interface {
	// CanView allows the owner and any listed member.
	CanView(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error)

	// CanEditContent allows the owner and active game masters to write
	// scenarios, NPCs and sessions.
	CanEditContent(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error)

	// CanManage allows only the owner (campaign edits, member management).
	CanManage(ctx context.Context, actor models.Actor, campaignID string) (*models.Campaign, error)
}

// SignUpRequest is a password registration.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// SignInRequest is a password sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService fronts the hosted authentication provider.
type AuthService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*models.AuthSession, error)
	SignIn(ctx context.Context, req *SignInRequest) (*models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error)
}

// InvitationSender delivers a campaign invitation. Delivery is a side effect
// outside any database transaction.
type InvitationSender interface {
	SendCampaignInvitation(ctx context.Context, inv models.CampaignInvitation) error
}
