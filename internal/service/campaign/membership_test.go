package campaign

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

func invitedClaims(actor models.Actor, campaignID string) *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: actor.UserID},
		Email:            actor.Email,
		Role:             "authenticated",
		UserMetadata: models.CampaignInvitation{
			Email:      actor.Email,
			CampaignID: campaignID,
		}.Metadata(),
	}
}

func TestAddMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f)

	res, err := f.membership.AddMember(ctx, owner, c.ID, &services.AddMemberRequest{
		Email: " A@B.com ",
		Role:  models.RoleGameMaster,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.Member{
		{Email: "a@b.com", Role: models.RoleGameMaster, Status: models.StatusInvited},
	}, res.Campaign.Members)
	assert.Equal(t, services.InvitationOutcome{Email: "a@b.com", Sent: true}, res.Invitation)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.db.locks)

	stored := f.db.campaigns[c.ID]
	assert.Len(t, stored.Members, 1)
}

func TestAddMember_RejectsBeforePersisting(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		req     services.AddMemberRequest
		wantErr error
	}{
		{"malformed email", owner, services.AddMemberRequest{Email: "a@b"}, domain.ErrValidation},
		{"email with spaces", owner, services.AddMemberRequest{Email: "a b@c.com"}, domain.ErrValidation},
		{"unknown role", owner, services.AddMemberRequest{Email: "new@b.com", Role: "bard"}, domain.ErrValidation},
		{"owner's own email", owner, services.AddMemberRequest{Email: "GM@example.com"}, domain.ErrValidation},
		{"duplicate, different case", owner, services.AddMemberRequest{Email: "A@b.com"}, domain.ErrConflict},
		{"member is not owner", player, services.AddMemberRequest{Email: "new@b.com"}, domain.ErrForbidden},
		{"stranger", stranger, services.AddMemberRequest{Email: "new@b.com"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			c := createCampaign(t, f, models.Member{Email: player.Email})
			f.sender.sent = nil

			_, err := f.membership.AddMember(context.Background(), tt.actor, c.ID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, f.db.campaigns[c.ID].Members, 1)
			assert.Empty(t, f.sender.sent)
		})
	}
}

func TestAddMember_DeliveryFailureKeepsMember(t *testing.T) {
	f := newFixture()
	c := createCampaign(t, f)
	f.sender.failFor["a@b.com"] = true

	res, err := f.membership.AddExistingUser(context.Background(), owner, c.ID, "a@b.com")
	require.NoError(t, err)
	assert.False(t, res.Invitation.Sent)
	assert.Equal(t, errDelivery.Error(), res.Invitation.Error)

	members := f.db.campaigns[c.ID].Members
	require.Len(t, members, 1)
	assert.Equal(t, models.Member{Email: "a@b.com", Role: models.RolePlayer, Status: models.StatusInvited}, members[0])
}

func TestRemoveAndUpdateMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f,
		models.Member{Email: "a@b.com"},
		models.Member{Email: "b@b.com", Status: models.StatusActive},
	)

	got, err := f.membership.UpdateMemberRole(ctx, owner, c.ID, "B@b.com", models.RoleSpectator)
	require.NoError(t, err)
	assert.Equal(t, models.Member{Email: "b@b.com", Role: models.RoleSpectator, Status: models.StatusActive}, got.Members[1])

	_, err = f.membership.UpdateMemberRole(ctx, owner, c.ID, "b@b.com", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.membership.UpdateMemberRole(ctx, owner, c.ID, "nobody@b.com", models.RolePlayer)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err = f.membership.RemoveMember(ctx, owner, c.ID, "a@b.com")
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "b@b.com", got.Members[0].Email)
	assert.Len(t, f.db.campaigns[c.ID].Members, 1)

	_, err = f.membership.RemoveMember(ctx, owner, c.ID, "a@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.membership.RemoveMember(ctx, models.Actor{UserID: "u-b", Email: "b@b.com"}, c.ID, "b@b.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResendInvitation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f, models.Member{Email: "a@b.com"})
	f.sender.sent = nil

	outcome, err := f.membership.ResendInvitation(ctx, owner, c.ID, "A@B.com")
	require.NoError(t, err)
	assert.True(t, outcome.Sent)
	assert.Equal(t, []string{"a@b.com"}, f.sender.emails())
	assert.Equal(t, models.StatusInvited, f.db.campaigns[c.ID].Members[0].Status)

	_, err = f.membership.ResendInvitation(ctx, owner, c.ID, "z@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAcceptInvitation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f, models.Member{Email: "a@b.com"})

	t.Run("no marker is not an error", func(t *testing.T) {
		claims := invitedClaims(player, c.ID)
		claims.UserMetadata = map[string]interface{}{}
		res, err := f.membership.AcceptInvitation(ctx, claims)
		require.NoError(t, err)
		assert.False(t, res.Activated)
		assert.Equal(t, models.StatusInvited, f.db.campaigns[c.ID].Members[0].Status)
	})

	t.Run("not on the roster", func(t *testing.T) {
		res, err := f.membership.AcceptInvitation(ctx, invitedClaims(stranger, c.ID))
		require.NoError(t, err)
		assert.False(t, res.Activated)
		assert.Nil(t, res.Status)
	})

	t.Run("invited member becomes active", func(t *testing.T) {
		res, err := f.membership.AcceptInvitation(ctx, invitedClaims(player, c.ID))
		require.NoError(t, err)
		assert.True(t, res.Activated)
		assert.Equal(t, c.ID, res.CampaignID)
		require.NotNil(t, res.Status)
		assert.Equal(t, models.StatusActive, *res.Status)
		assert.Equal(t, models.StatusActive, f.db.campaigns[c.ID].Members[0].Status)
	})

	t.Run("second acceptance is a no-op", func(t *testing.T) {
		res, err := f.membership.AcceptInvitation(ctx, invitedClaims(player, c.ID))
		require.NoError(t, err)
		assert.False(t, res.Activated)
		assert.Equal(t, models.StatusActive, *res.Status)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		_, err := f.membership.AcceptInvitation(ctx, invitedClaims(player, "camp-gone"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
