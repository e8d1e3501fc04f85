package campaign

import (
	"context"
	"log/slog"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/metrics"
)

// inviter sends campaign invitations and turns each delivery into an outcome.
// Delivery failures never propagate as errors.
type inviter struct {
	sender services.InvitationSender
	logger *slog.Logger
}

func (i inviter) invite(ctx context.Context, campaign *models.Campaign, inviterEmail, email string) services.InvitationOutcome {
	err := i.sender.SendCampaignInvitation(ctx, models.CampaignInvitation{
		Email:         email,
		CampaignID:    campaign.ID,
		CampaignTitle: campaign.Title,
		InviterEmail:  inviterEmail,
	})
	metrics.InvitationsTotal.WithLabelValues(metrics.Result(err)).Inc()

	if err != nil {
		i.logger.Warn("invitation not delivered",
			"campaign_id", campaign.ID,
			"email", email,
			"error", err,
		)
		return services.InvitationOutcome{Email: email, Error: err.Error()}
	}

	i.logger.Info("invitation sent",
		"campaign_id", campaign.ID,
		"email", email,
	)
	return services.InvitationOutcome{Email: email, Sent: true}
}

// inviteAll invites every member still in the invited state, one at a time.
func (i inviter) inviteAll(ctx context.Context, campaign *models.Campaign, inviterEmail string) []services.InvitationOutcome {
	outcomes := make([]services.InvitationOutcome, 0, len(campaign.Members))
	for _, m := range campaign.Members {
		if m.Status != models.StatusInvited {
			continue
		}
		outcomes = append(outcomes, i.invite(ctx, campaign, inviterEmail, m.Email))
	}
	return outcomes
}
