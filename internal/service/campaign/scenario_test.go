package campaign

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

// Walks the full flow: create a campaign with one invited player, write a
// scenario through edit commands and read it back unchanged.
func TestScenarioEndToEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.campaigns.CreateCampaign(ctx, owner, &services.CreateCampaignRequest{
		Title:       "Lost Mines",
		Description: "Phandelver",
		Members:     []models.Member{{Email: "a@b.com", Role: models.RolePlayer}},
	})
	require.NoError(t, err)
	c := res.Campaign
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, models.CampaignInvitation{
		Email:         "a@b.com",
		CampaignID:    c.ID,
		CampaignTitle: "Lost Mines",
		InviterEmail:  owner.Email,
	}, f.sender.sent[0])

	scenario, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{
		CampaignID:  c.ID,
		Title:       "Goblin Arrows",
		Description: "Ambush on the Triboar Trail",
	})
	require.NoError(t, err)
	assert.Equal(t, content.New(), scenario.Content)

	edited, err := f.scenarios.EditContent(ctx, owner, scenario.ID, []content.Command{
		{Op: content.OpAddSection, SectionType: content.SectionMission},
		{Op: content.OpUpdateSection, SectionID: "el-1", Field: content.FieldContent, Value: "Escort the wagon to Phandalin"},
		{Op: content.OpAddChoice},
		{Op: content.OpAddOptionConsequence, ChoiceID: "el-2", OptionID: "el-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"el-1", "", "el-2", "el-5"}, edited.Created)

	doc := edited.Scenario.Content
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "New Mission", doc.Sections[0].Title)
	require.Len(t, doc.Choices, 1)
	require.Len(t, doc.Choices[0].Options, 2)
	assert.Equal(t, "Option 1", doc.Choices[0].Options[0].Text)
	assert.Len(t, doc.Choices[0].Options[0].Consequences, 1)
	assert.Empty(t, doc.Choices[0].Options[1].Consequences)

	fetched, err := f.scenarios.GetScenario(ctx, owner, scenario.ID)
	require.NoError(t, err)
	want, err := json.Marshal(doc)
	require.NoError(t, err)
	got, err := json.Marshal(fetched.Content)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	var decoded content.Document
	require.NoError(t, json.Unmarshal(got, &decoded))
	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(got), string(again))

	// The invited player can read but not edit
	_, err = f.scenarios.GetScenario(ctx, player, scenario.ID)
	require.NoError(t, err)
	_, err = f.scenarios.EditContent(ctx, player, scenario.ID, []content.Command{{Op: content.OpAddConsequence}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEditContent_FailingCommandSavesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f)
	scenario, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{CampaignID: c.ID, Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = f.scenarios.EditContent(ctx, owner, scenario.ID, []content.Command{
		{Op: content.OpAddDeliverable},
		{Op: content.OpRemoveChoice, ChoiceID: "nope"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, content.New(), f.db.scenarios[scenario.ID].Content)

	_, err = f.scenarios.EditContent(ctx, owner, scenario.ID, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEditContent_LinkNPC(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f)
	other := createCampaign(t, f)

	scenario, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{CampaignID: c.ID, Title: "t", Description: "d"})
	require.NoError(t, err)
	npc, err := f.npcs.CreateNPC(ctx, owner, &services.CreateNPCRequest{CampaignID: c.ID, Name: "Glasstaff", Description: "Redbrand wizard"})
	require.NoError(t, err)
	foreign, err := f.npcs.CreateNPC(ctx, owner, &services.CreateNPCRequest{CampaignID: other.ID, Name: "Venomfang", Description: "Dragon"})
	require.NoError(t, err)

	_, err = f.scenarios.EditContent(ctx, owner, scenario.ID, []content.Command{
		{Op: content.OpAddSection, SectionType: content.SectionCharacter},
		{Op: content.OpLinkNPC, SectionID: "el-1", NPCID: foreign.ID},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err := f.scenarios.EditContent(ctx, owner, scenario.ID, []content.Command{
		{Op: content.OpAddSection, SectionType: content.SectionCharacter},
		{Op: content.OpLinkNPC, SectionID: "el-2", NPCID: npc.ID},
	})
	require.NoError(t, err)
	s := res.Scenario.Content.Sections[0]
	assert.Equal(t, "Glasstaff", s.Title)
	assert.Equal(t, "Redbrand wizard", s.Content)
	require.NotNil(t, s.NPCID)
	assert.Equal(t, npc.ID, *s.NPCID)
}

func TestImportScenarios_PartialFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	source := createCampaign(t, f)
	hidden, err := f.campaigns.CreateCampaign(ctx, stranger, &services.CreateCampaignRequest{Title: "Private", Description: "d"})
	require.NoError(t, err)
	target := createCampaign(t, f)

	doc := content.New()
	doc, _, err = doc.AddSection(seqIDs(), content.SectionNote)
	require.NoError(t, err)
	s1, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{
		CampaignID: source.ID, Title: "Redbrand Hideout", Description: "Tresendar Manor", Content: &doc,
	})
	require.NoError(t, err)
	secret, err := f.scenarios.CreateScenario(ctx, stranger, &services.CreateScenarioRequest{
		CampaignID: hidden.Campaign.ID, Title: "Secret", Description: "d",
	})
	require.NoError(t, err)

	res, err := f.scenarios.ImportScenarios(ctx, owner, target.ID, []string{s1.ID, secret.ID, "scn-404"})
	require.NoError(t, err)
	assert.Equal(t, services.ImportSummary{Requested: 3, Cloned: 1, Failed: 2}, res.Summary)
	require.Len(t, res.Items, 3)

	assert.Equal(t, importActionCloned, res.Items[0].Action)
	assert.NotEmpty(t, res.Items[0].ScenarioID)
	assert.NotEqual(t, s1.ID, res.Items[0].ScenarioID)
	for _, item := range res.Items[1:] {
		assert.Equal(t, importActionFailed, item.Action)
		assert.Empty(t, item.ScenarioID)
		assert.Contains(t, item.Error, "not found")
	}

	clone := f.db.scenarios[res.Items[0].ScenarioID]
	assert.Equal(t, target.ID, clone.CampaignID)
	assert.Equal(t, owner.UserID, clone.UserID)
	assert.Equal(t, s1.Title, clone.Title)
	assert.Equal(t, s1.Description, clone.Description)
	assert.Equal(t, s1.Content, clone.Content)

	// Source untouched, import recorded on the target
	assert.Equal(t, source.ID, f.db.scenarios[s1.ID].CampaignID)
	assert.Equal(t, []string{s1.ID}, f.db.campaigns[target.ID].ImportedScenarios)
}

func TestImportScenarios_Limits(t *testing.T) {
	f := newFixture()
	target := createCampaign(t, f)

	_, err := f.scenarios.ImportScenarios(context.Background(), owner, target.ID, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.scenarios.ImportScenarios(context.Background(), player, target.ID, []string{"scn-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAllScenarios_CarriesCampaignTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f, models.Member{Email: player.Email})
	_, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{CampaignID: c.ID, Title: "t", Description: "d"})
	require.NoError(t, err)

	list, err := f.scenarios.ListAllScenarios(ctx, player)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lost Mines", list[0].CampaignTitle)

	list, err = f.scenarios.ListAllScenarios(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScenarioPermissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f,
		models.Member{Email: coMaster.Email, Role: models.RoleGameMaster, Status: models.StatusActive},
		models.Member{Email: spectator.Email, Role: models.RoleSpectator, Status: models.StatusActive},
		models.Member{Email: player.Email, Role: models.RoleGameMaster},
	)

	tests := []struct {
		name    string
		actor   models.Actor
		wantErr error
	}{
		{"owner", owner, nil},
		{"active game master", coMaster, nil},
		{"invited game master", player, domain.ErrForbidden},
		{"spectator", spectator, domain.ErrForbidden},
		{"stranger", stranger, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := f.scenarios.CreateScenario(ctx, tt.actor, &services.CreateScenarioRequest{
				CampaignID: c.ID, Title: "t", Description: "d",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.actor.UserID, s.UserID)

			updated, err := f.scenarios.UpdateScenario(ctx, tt.actor, s.ID, &services.UpdateScenarioRequest{Title: ptr("Renamed")})
			require.NoError(t, err)
			assert.Equal(t, "Renamed", updated.Title)
			require.NoError(t, f.scenarios.DeleteScenario(ctx, tt.actor, s.ID))
		})
	}
}

func TestUpdateScenario_RejectsInvalidContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCampaign(t, f)
	s, err := f.scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{CampaignID: c.ID, Title: "t", Description: "d"})
	require.NoError(t, err)

	bad := content.New()
	bad.Choices = []content.Choice{{ID: "c1", Title: "Empty"}}
	_, err = f.scenarios.UpdateScenario(ctx, owner, s.ID, &services.UpdateScenarioRequest{Content: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
