package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

func createScenario(t *testing.T, f *fixture, campaignID, title string) *models.Scenario {
	t.Helper()
	s, err := f.scenarios.CreateScenario(context.Background(), owner, &services.CreateScenarioRequest{
		CampaignID: campaignID, Title: title, Description: "d",
	})
	require.NoError(t, err)
	return s
}

func TestCreateSession_Validation(t *testing.T) {
	f := newFixture()
	c := createCampaign(t, f)
	other := createCampaign(t, f)
	foreign := createScenario(t, f, other.ID, "Elsewhere")

	tests := []struct {
		name string
		req  services.CreateSessionRequest
	}{
		{"missing title", services.CreateSessionRequest{CampaignID: c.ID, Date: "2024-05-03"}},
		{"missing date", services.CreateSessionRequest{CampaignID: c.ID, Title: "One"}},
		{"not an iso date", services.CreateSessionRequest{CampaignID: c.ID, Title: "One", Date: "05/03/2024"}},
		{"impossible date", services.CreateSessionRequest{CampaignID: c.ID, Title: "One", Date: "2024-02-30"}},
		{"scenario of another campaign", services.CreateSessionRequest{CampaignID: c.ID, Title: "One", Date: "2024-05-03", ScenarioID: &foreign.ID}},
		{"unknown scenario", services.CreateSessionRequest{CampaignID: c.ID, Title: "One", Date: "2024-05-03", ScenarioID: ptr("missing")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sessions.CreateSession(context.Background(), owner, &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.db.sessions)
}

func TestSessions_LifecycleAndOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := createCampaign(t, f, models.Member{Email: player.Email})
	scn := createScenario(t, f, c.ID, "Goblin Arrows")

	for _, d := range []string{"2024-04-26", "2024-05-10", "2024-05-03"} {
		_, err := f.sessions.CreateSession(ctx, owner, &services.CreateSessionRequest{
			CampaignID: c.ID, Title: "Session " + d, Date: d, ScenarioID: &scn.ID,
		})
		require.NoError(t, err)
	}

	list, err := f.sessions.ListSessions(ctx, player, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2024-05-10", "2024-05-03", "2024-04-26"},
		[]string{list[0].Date, list[1].Date, list[2].Date})

	t.Run("clearing the scenario link", func(t *testing.T) {
		got, err := f.sessions.UpdateSession(ctx, owner, list[0].ID, &services.UpdateSessionRequest{
			Notes:      ptr("Cragmaw hideout cleared"),
			ScenarioID: models.OptionalString{Present: true},
		})
		require.NoError(t, err)
		assert.Nil(t, got.ScenarioID)
		assert.Equal(t, "Cragmaw hideout cleared", got.Notes)
	})

	t.Run("deleting the scenario nulls remaining links", func(t *testing.T) {
		require.NoError(t, f.scenarios.DeleteScenario(ctx, owner, scn.ID))
		got, err := f.sessions.GetSession(ctx, owner, list[1].ID)
		require.NoError(t, err)
		assert.Nil(t, got.ScenarioID)
	})

	t.Run("bad date on update", func(t *testing.T) {
		_, err := f.sessions.UpdateSession(ctx, owner, list[1].ID, &services.UpdateSessionRequest{Date: ptr("tomorrow")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSessions_Permissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := createCampaign(t, f,
		models.Member{Email: player.Email},
		models.Member{Email: coMaster.Email, Role: models.RoleGameMaster, Status: models.StatusActive},
	)
	s, err := f.sessions.CreateSession(ctx, coMaster, &services.CreateSessionRequest{
		CampaignID: c.ID, Title: "Zero", Date: "2024-04-26",
	})
	require.NoError(t, err)

	_, err = f.sessions.GetSession(ctx, player, s.ID)
	assert.NoError(t, err)

	_, err = f.sessions.CreateSession(ctx, player, &services.CreateSessionRequest{
		CampaignID: c.ID, Title: "Mine", Date: "2024-04-27",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, f.sessions.DeleteSession(ctx, player, s.ID), domain.ErrForbidden)

	_, err = f.sessions.GetSession(ctx, stranger, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.sessions.DeleteSession(ctx, stranger, s.ID), domain.ErrNotFound)

	require.NoError(t, f.sessions.DeleteSession(ctx, owner, s.ID))
	_, err = f.sessions.GetSession(ctx, owner, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
