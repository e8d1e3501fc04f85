package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
)

// stubCampaigns serves GetByID from a map; nothing else is called.
type stubCampaigns struct {
	repositories.CampaignRepository
	byID map[string]models.Campaign
}

func (s stubCampaigns) GetByID(_ context.Context, id string) (*models.Campaign, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func TestMemberBasedAuthorizer(t *testing.T) {
	repo := stubCampaigns{byID: map[string]models.Campaign{
		"c1": {
			ID:     "c1",
			UserID: "owner",
			Members: []models.Member{
				{Email: "gm@example.com", Role: models.RoleGameMaster, Status: models.StatusActive},
				{Email: "pending-gm@example.com", Role: models.RoleGameMaster, Status: models.StatusInvited},
				{Email: "player@example.com", Role: models.RolePlayer, Status: models.StatusActive},
			},
		},
	}}
	a := NewMemberBasedAuthorizer(repo)

	tests := []struct {
		name       string
		actor      models.Actor
		viewErr    error
		editErr    error
		manageErr  error
		campaignID string
	}{
		{"owner", models.Actor{UserID: "owner", Email: "boss@example.com"}, nil, nil, nil, "c1"},
		{"active game master", models.Actor{UserID: "u1", Email: "GM@example.com"}, nil, nil, domain.ErrForbidden, "c1"},
		{"invited game master", models.Actor{UserID: "u2", Email: "pending-gm@example.com"}, nil, domain.ErrForbidden, domain.ErrForbidden, "c1"},
		{"player", models.Actor{UserID: "u3", Email: "player@example.com"}, nil, domain.ErrForbidden, domain.ErrForbidden, "c1"},
		{"stranger", models.Actor{UserID: "u4", Email: "x@example.com"}, domain.ErrNotFound, domain.ErrNotFound, domain.ErrNotFound, "c1"},
		{"no email", models.Actor{UserID: "u5"}, domain.ErrNotFound, domain.ErrNotFound, domain.ErrNotFound, "c1"},
		{"missing campaign", models.Actor{UserID: "owner"}, domain.ErrNotFound, domain.ErrNotFound, domain.ErrNotFound, "c9"},
	}

	check := func(t *testing.T, c *models.Campaign, err, want error) {
		t.Helper()
		if want == nil {
			require.NoError(t, err)
			assert.Equal(t, "c1", c.ID)
			return
		}
		assert.ErrorIs(t, err, want)
		assert.Nil(t, c)
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := a.CanView(ctx, tt.actor, tt.campaignID)
			check(t, c, err, tt.viewErr)
			c, err = a.CanEditContent(ctx, tt.actor, tt.campaignID)
			check(t, c, err, tt.editErr)
			c, err = a.CanManage(ctx, tt.actor, tt.campaignID)
			check(t, c, err, tt.manageErr)
		})
	}
}
