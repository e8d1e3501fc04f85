package auth

import (
	"context"
	"fmt"
	"strings"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

// MagicLinkSender is the part of GoTrueClient the inviter needs.
type MagicLinkSender interface {
	SendMagicLink(ctx context.Context, req MagicLinkRequest) error
}

// MagicLinkInviter delivers campaign invitations as magic links that land on
// the campaign page and carry the invitation marker in user metadata.
type MagicLinkInviter struct {
	sender  MagicLinkSender
	siteURL string
}

// NewMagicLinkInviter creates an inviter redirecting to pages under siteURL.
func NewMagicLinkInviter(sender MagicLinkSender, siteURL string) *MagicLinkInviter {
	return &MagicLinkInviter{sender: sender, siteURL: strings.TrimRight(siteURL, "/")}
}

var _ services.InvitationSender = (*MagicLinkInviter)(nil)

// SendCampaignInvitation emails the invitation link.
func (i *MagicLinkInviter) SendCampaignInvitation(ctx context.Context, inv models.CampaignInvitation) error {
	return i.sender.SendMagicLink(ctx, MagicLinkRequest{
		Email:      inv.Email,
		RedirectTo: fmt.Sprintf("%s/campaigns/%s", i.siteURL, inv.CampaignID),
		Data:       inv.Metadata(),
	})
}
